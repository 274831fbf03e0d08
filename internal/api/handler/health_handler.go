package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medagenda/medapp/internal/sandbox"
)

// HealthHandler serves GET /health (liveness) and GET /health/ready.
type HealthHandler struct {
	dir *sandbox.Directory
}

func NewHealthHandler(dir *sandbox.Directory) *HealthHandler {
	return &HealthHandler{dir: dir}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

type readinessResponse struct {
	Status      string `json:"status"`
	Accounts    int    `json:"accounts"`
	Specialties int    `json:"specialties"`
}

// Readiness reports degraded until the directory holds at least one account
// and one specialty.
func (h *HealthHandler) Readiness(c echo.Context) error {
	resp := readinessResponse{
		Status:      "ok",
		Accounts:    len(h.dir.Accounts()),
		Specialties: len(h.dir.Specialties()),
	}
	status := http.StatusOK
	if resp.Accounts == 0 || resp.Specialties == 0 {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}
