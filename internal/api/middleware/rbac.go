package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC admits only the listed account types ("tipo").
func RBAC(allowedTipos ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedTipos))
	for _, r := range allowedTipos {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tipo, _ := c.Get(ContextTipo).(string)
			if _, ok := allowed[tipo]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
