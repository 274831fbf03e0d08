package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medagenda/medapp/internal/sandbox"
)

// Context keys set by Auth.
const (
	ContextAccountID = "account_id"
	ContextTipo      = "tipo"
	ContextClaims    = "claims"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (*sandbox.Claims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Auth validates the JWT and injects claims into context.
func Auth(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			raw, ok := BearerToken(authHeader)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			id, _ := claims.AccountID()

			c.Set(ContextAccountID, id)
			c.Set(ContextTipo, claims.Tipo)
			c.Set(ContextClaims, claims)

			return next(c)
		}
	}
}
