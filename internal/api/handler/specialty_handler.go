package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medagenda/medapp/internal/sandbox"
)

type SpecialtyHandler struct {
	dir *sandbox.Directory
}

func NewSpecialtyHandler(dir *sandbox.Directory) *SpecialtyHandler {
	return &SpecialtyHandler{dir: dir}
}

// List handles GET /especialidades.
func (h *SpecialtyHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, toSpecialtyResponses(h.dir.Specialties()))
}
