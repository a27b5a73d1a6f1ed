package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"context"
	"errors"
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for splitting the header
	"time"

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/little-lemon/internal/model"
	"github.com/iliyamo/little-lemon/internal/repository"
	"github.com/iliyamo/little-lemon/internal/utils"
)

// TokenLookup resolves a stored token key to the active user owning it.
// repository.TokenRepo satisfies it.
type TokenLookup interface {
	UserByKey(ctx context.Context, key string) (*model.User, error)
}

const (
	msgNoCredentials = "authentication credentials were not provided"
	msgInvalidToken  = "invalid token"
)

// TokenAuth returns an Echo middleware that admits a request only when it
// carries a valid API token.  The header may use either the "Token" or
// the "Bearer" scheme.  A token must pass signature verification and still
// be present in the store, so logging out revokes it immediately.
//
// On success the user id, username and raw token are stored in the context
// (see UserID, Username and AuthToken).
func TokenAuth(secret string, tokens TokenLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.Fields(auth)
			// No header, or a scheme we do not handle: the caller never tried.
			if len(parts) == 0 || !isTokenScheme(parts[0]) {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": msgNoCredentials})
			}
			if len(parts) != 2 {
				return unauthorized(c, msgInvalidToken)
			}
			raw := parts[1]

			// Cheap check first: the signature must be ours.
			uid, _, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return unauthorized(c, msgInvalidToken)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := tokens.UserByKey(ctx, raw)
			if err != nil {
				if errors.Is(err, repository.ErrTokenNotFound) {
					return unauthorized(c, msgInvalidToken)
				}
				c.Logger().Errorf("token lookup: %v", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
			}
			// The store is authoritative; a token signed for another user is forged.
			if u.ID != uid {
				return unauthorized(c, msgInvalidToken)
			}

			c.Set(ctxUserID, u.ID)
			c.Set(ctxUsername, u.Username)
			c.Set(ctxAuthToken, raw)
			return next(c)
		}
	}
}

func isTokenScheme(s string) bool {
	return strings.EqualFold(s, "Token") || strings.EqualFold(s, "Bearer")
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Token")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
}
