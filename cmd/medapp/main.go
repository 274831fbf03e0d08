// Command medapp is the command-line client for the medical-appointment
// backend, plus a local sandbox server implementing the same API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiURL   string
	logLevel string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "medapp",
		Short:         "Book and manage medical appointments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "backend base URL (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(loginCmd(opts))
	rootCmd.AddCommand(registerCmd(opts))
	rootCmd.AddCommand(logoutCmd(opts))
	rootCmd.AddCommand(whoamiCmd(opts))
	rootCmd.AddCommand(routesCmd(opts))
	rootCmd.AddCommand(homeCmd(opts))
	rootCmd.AddCommand(specialtiesCmd(opts))
	rootCmd.AddCommand(doctorsCmd(opts))
	rootCmd.AddCommand(appointmentsCmd(opts))
	rootCmd.AddCommand(usersCmd(opts))
	rootCmd.AddCommand(sandboxCmd(opts))

	return rootCmd
}
