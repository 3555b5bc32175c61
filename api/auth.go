package api

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/govindrajkumar/easy-lease-sub000/api/common"
	"github.com/govindrajkumar/easy-lease-sub000/app"
	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// validateUser resolves the caller from the auth header or cookie
func validateUser(config *common.Config, r *http.Request, a *app.App) (*model.Caller, error) {
	token := r.Header.Get(config.AuthCookieName)
	if token == "" {
		c, err := r.Cookie(config.AuthCookieName)
		if err != nil || c.Value == "" {
			return nil, errors.New("token is not present")
		}
		token = c.Value
	}
	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}

	claims, err := a.JWTService.FetchJWTToken(token)
	if err != nil {
		return nil, errors.Wrap(err, "invalid jwt token")
	}
	return &model.Caller{UserID: claims.Identity(), Email: claims.Email}, nil
}
