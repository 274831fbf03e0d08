package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/api/handler"
	"github.com/medagenda/medapp/internal/api/middleware"
	"github.com/medagenda/medapp/internal/sandbox"
)

// Deps are the collaborators of the sandbox router.
type Deps struct {
	Directory *sandbox.Directory
	Tokens    *sandbox.Tokens
	Logger    zerolog.Logger
	// Location interprets zone-less appointment timestamps. Defaults to time.Local.
	Location *time.Location
	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "medapp_sandbox",
		Registerer: deps.Registerer,
	}))

	// --- Dependencies ---
	users := handler.NewUserHandler(deps.Directory, deps.Tokens, deps.Logger)
	specialties := handler.NewSpecialtyHandler(deps.Directory)
	appointments := handler.NewAppointmentHandler(deps.Directory, deps.Location, deps.Logger)
	health := handler.NewHealthHandler(deps.Directory)
	auth := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RBAC(sandbox.TipoAdmin)

	// --- Public routes ---
	e.POST("/usuarios/login", users.Login)
	e.POST("/usuarios", users.Register)

	// --- Authenticated routes ---
	e.POST("/usuarios/logout", users.Logout, auth)
	e.GET("/usuarios/me", users.Me, auth)
	e.GET("/usuarios/medicos", users.Doctors, auth)
	e.GET("/usuarios", users.List, auth, adminOnly)
	e.PUT("/usuarios/:id/senha", users.ChangePassword, auth, adminOnly)

	e.GET("/especialidades", specialties.List, auth)

	e.GET("/consultas", appointments.List, auth)
	e.POST("/consultas", appointments.Create, auth, middleware.RBAC(sandbox.TipoAdmin, sandbox.TipoPaciente))
	e.PUT("/consultas/:id/status", appointments.UpdateStatus, auth)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
