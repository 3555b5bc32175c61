package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims - a struct that will be encoded to JWT
type Claims struct {
	UserID string `json:"userID"`
	Email  string `json:"email,omitempty"`
	jwt.StandardClaims
}

// JWTToken - JWT Token
type JWTToken struct {
	Value     string
	ExpiresAt time.Time
}

// Identity returns the user id of the claims, falling back to the subject.
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

func fetchJWTToken(tokenStr string, jwtKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtKey), nil
	})

	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("the JWT Token is invalid")
	}
	if claims.Identity() == "" {
		return nil, errors.New("the JWT Token has no user")
	}

	return claims, nil
}
