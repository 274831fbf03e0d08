package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/service"
	"github.com/medagenda/medapp/internal/infrastructure/apiclient"
	"github.com/medagenda/medapp/internal/infrastructure/backend"
	"github.com/medagenda/medapp/internal/infrastructure/storage"
	"github.com/medagenda/medapp/internal/pkg/config"
	"github.com/medagenda/medapp/internal/pkg/metrics"
	"github.com/medagenda/medapp/pkg/logger"
)

const metricsExportTimeout = 5 * time.Second

// app is the client wired for one command invocation.
type app struct {
	cfg          *config.Config
	log          zerolog.Logger
	client       *apiclient.Client
	sessions     *service.SessionService
	directory    *service.DirectoryService
	appointments *service.AppointmentService
	admin        *service.AdminService
	closeStore   func()
}

func loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	if opts.apiURL != "" {
		cfg.APIBaseURL = opts.apiURL
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty, Service: "medapp"})
	return cfg, log, nil
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, log, err := loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := storage.Open(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout, log)
	auth := backend.NewAuthAPI(client, log)
	sessions := service.NewSessionService(auth, store, log)

	return &app{
		cfg:          cfg,
		log:          log,
		client:       client,
		sessions:     sessions,
		directory:    service.NewDirectoryService(backend.NewDirectory(auth, backend.NewSpecialtiesAPI(client)), sessions, log),
		appointments: service.NewAppointmentService(backend.NewAppointmentsAPI(client, time.Local), sessions, time.Local, log),
		admin:        service.NewAdminService(backend.NewAdminAPI(client, log), sessions, log),
		closeStore:   closeStore,
	}, nil
}

// enter restores the persisted session and admits the command only if the
// navigation gate makes screen reachable.
func (a *app) enter(ctx context.Context, screen domain.Screen) error {
	a.sessions.Restore(ctx)
	if err := domain.Gate(a.sessions.Snapshot()).Require(screen); err != nil {
		return fmt.Errorf("%w; %s", err, hint(screen))
	}
	return nil
}

func hint(screen domain.Screen) string {
	switch screen {
	case domain.ScreenLogin, domain.ScreenRegister:
		return "run `medapp logout` first"
	case domain.ScreenAdminDashboard, domain.ScreenDoctorDashboard, domain.ScreenPatientDashboard:
		return "this screen belongs to another role"
	default:
		return "run `medapp login` first"
	}
}

// run wires the app, enters screen (when non-empty) and calls fn.
func run(cmd *cobra.Command, opts *rootOptions, screen domain.Screen, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.closeStore()
	defer a.exportMetrics(ctx)

	if screen == "" {
		a.sessions.Restore(ctx)
	} else if err := a.enter(ctx, screen); err != nil {
		return err
	}
	return fn(ctx, a)
}

// exportMetrics ships the client metrics of this invocation to the configured
// sinks. Failures are logged only.
func (a *app) exportMetrics(ctx context.Context) {
	target := metrics.ExportTarget{
		Textfile:       a.cfg.Metrics.Textfile,
		PushgatewayURL: a.cfg.Metrics.PushgatewayURL,
		Job:            a.cfg.Metrics.Job,
	}
	if !target.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), metricsExportTimeout)
	defer cancel()
	if err := metrics.Export(ctx, metrics.ClientRegistry, target); err != nil {
		a.log.Warn().Err(err).Msg("metrics export failed")
	}
}
