package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medagenda/medapp/internal/api/middleware"
	"github.com/medagenda/medapp/internal/sandbox"
)

// ctxClaims extracts the identity injected by the Auth middleware. A zero id
// or empty tipo means the middleware did not run.
func ctxClaims(c echo.Context) (id int64, tipo string, err error) {
	id, _ = c.Get(middleware.ContextAccountID).(int64)
	tipo, _ = c.Get(middleware.ContextTipo).(string)
	if id == 0 || tipo == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, tipo, nil
}

func ctxTokenClaims(c echo.Context) (*sandbox.Claims, error) {
	claims, _ := c.Get(middleware.ContextClaims).(*sandbox.Claims)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// pathID parses the ":id" route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// queryID parses an optional numeric query parameter; absent means 0.
func queryID(c echo.Context, name string) (int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// bindAndValidate binds the JSON body into req and runs the echo validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
