package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/medagenda/medapp/internal/api"
	"github.com/medagenda/medapp/internal/sandbox"
)

const (
	sandboxTokenTTL        = 24 * time.Hour
	sandboxShutdownTimeout = 10 * time.Second
)

func sandboxCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Local stand-in for the appointments backend",
	}
	cmd.AddCommand(sandboxServeCmd(opts))
	return cmd
}

func sandboxServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the backend API from an in-memory seeded directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadConfig(ctx, opts)
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Sandbox.Port
			}

			directory := sandbox.NewDirectory(0)
			if err := sandbox.Seed(directory, cfg.Sandbox.SeedPassword); err != nil {
				return fmt.Errorf("seed sandbox: %w", err)
			}

			e := api.NewRouter(api.Deps{
				Directory: directory,
				Tokens:    sandbox.NewTokens(cfg.Sandbox.JWTSecret, sandboxTokenTTL),
				Logger:    log,
				Location:  time.Local,
			})

			errCh := make(chan error, 1)
			go func() {
				addr := ":" + port
				log.Info().Str("addr", addr).Msg("starting sandbox server")
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return fmt.Errorf("sandbox server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down sandbox server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), sandboxShutdownTimeout)
			defer cancel()
			if err := e.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("sandbox shutdown: %w", err)
			}
			log.Info().Msg("sandbox server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides SANDBOX_PORT)")
	return cmd
}
