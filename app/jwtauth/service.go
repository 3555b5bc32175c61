package jwtauth

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"

	"github.com/govindrajkumar/easy-lease-sub000/app/config"
)

// Service - issues and validates caller tokens
type Service interface {
	FetchJWTToken(token string) (*Claims, error)
	CreateJWTToken(userID, email string, tokenExpiration time.Duration) (*JWTToken, error)
}

type service struct {
	config *config.Config
}

// NewService create new jwt service
func NewService(conf *config.Config) Service {
	return &service{config: conf}
}

func (s *service) FetchJWTToken(token string) (*Claims, error) {
	if s.config.JWTKey == "" {
		return nil, errors.New("jwt key is not configured")
	}
	claims, err := fetchJWTToken(token, s.config.JWTKey)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

func (s *service) CreateJWTToken(userID, email string, tokenExpiration time.Duration) (*JWTToken, error) {
	expirationTime := time.Now().Add(tokenExpiration)
	claims := &Claims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.JWTKey))
	if err != nil {
		return nil, errors.Wrap(err, "unable to sign jwt token")
	}
	return &JWTToken{
		Value:     tokenString,
		ExpiresAt: expirationTime,
	}, nil
}
