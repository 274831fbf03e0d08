package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/api/middleware"
	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/pkg/metrics"
	"github.com/medagenda/medapp/internal/sandbox"
)

type UserHandler struct {
	dir    *sandbox.Directory
	tokens *sandbox.Tokens
	log    zerolog.Logger
}

func NewUserHandler(dir *sandbox.Directory, tokens *sandbox.Tokens, log zerolog.Logger) *UserHandler {
	return &UserHandler{dir: dir, tokens: tokens, log: log}
}

// Login handles POST /usuarios/login and returns {token}.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	acc, err := h.dir.Authenticate(req.Email, req.Senha)
	if err != nil {
		metrics.SandboxLoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	token, err := h.tokens.Issue(acc)
	if err != nil {
		return err
	}
	metrics.SandboxLoginsTotal.WithLabelValues("success").Inc()
	h.log.Info().Int64("account_id", acc.ID).Str("tipo", acc.Tipo).Msg("sandbox login")
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Register handles POST /usuarios. Anonymous callers may only create
// PACIENTE accounts; an ADMIN bearer token unlocks the other types.
func (h *UserHandler) Register(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Tipo == "" {
		req.Tipo = sandbox.TipoPaciente
	}
	if req.Tipo != sandbox.TipoPaciente && !h.callerIsAdmin(c) {
		return domain.ErrForbidden
	}

	acc, err := h.dir.CreateAccount(sandbox.NewAccount{
		Name:      req.Nome,
		Email:     req.Email,
		Password:  req.Senha,
		Tipo:      req.Tipo,
		Specialty: req.Especialidade,
	})
	if err != nil {
		return err
	}
	h.log.Info().Int64("account_id", acc.ID).Str("tipo", acc.Tipo).Msg("sandbox account created")
	return c.JSON(http.StatusCreated, toUserResponse(acc))
}

func (h *UserHandler) callerIsAdmin(c echo.Context) bool {
	raw, ok := middleware.BearerToken(c.Request().Header.Get("Authorization"))
	if !ok {
		return false
	}
	claims, err := h.tokens.Parse(raw)
	return err == nil && claims.Tipo == sandbox.TipoAdmin
}

// Me handles GET /usuarios/me.
func (h *UserHandler) Me(c echo.Context) error {
	id, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	acc, err := h.dir.Account(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(acc))
}

// List handles GET /usuarios (ADMIN).
func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserResponses(h.dir.Accounts()))
}

// Doctors handles GET /usuarios/medicos[?especialidade=].
func (h *UserHandler) Doctors(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserResponses(h.dir.Doctors(c.QueryParam("especialidade"))))
}

// ChangePassword handles PUT /usuarios/:id/senha (ADMIN).
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.dir.SetPassword(id, req.NovaSenha); err != nil {
		return err
	}
	h.log.Info().Int64("account_id", id).Msg("sandbox password changed")
	return c.NoContent(http.StatusNoContent)
}

// Logout handles POST /usuarios/logout by revoking the presented token.
func (h *UserHandler) Logout(c echo.Context) error {
	claims, err := ctxTokenClaims(c)
	if err != nil {
		return err
	}
	h.tokens.Revoke(claims)
	return c.NoContent(http.StatusNoContent)
}
