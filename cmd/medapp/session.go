package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/medagenda/medapp/internal/core/domain"
)

func loginCmd(opts *rootOptions) *cobra.Command {
	var creds domain.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenLogin, func(ctx context.Context, a *app) error {
				if creds.Password == "" {
					pw, err := readSecret(cmd, "Password: ")
					if err != nil {
						return err
					}
					creds.Password = pw
				}
				if err := a.sessions.SignIn(ctx, creds); err != nil {
					return err
				}
				return printWelcome(cmd.OutOrStdout(), a.sessions.Snapshot())
			})
		},
	}
	cmd.Flags().StringVar(&creds.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&creds.Password, "password", "", "account password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func registerCmd(opts *rootOptions) *cobra.Command {
	var data domain.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a patient account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenRegister, func(ctx context.Context, a *app) error {
				if data.Password == "" {
					pw, err := readSecret(cmd, "Password: ")
					if err != nil {
						return err
					}
					data.Password = pw
				}
				if err := a.sessions.Register(ctx, data); err != nil {
					return err
				}
				return printWelcome(cmd.OutOrStdout(), a.sessions.Snapshot())
			})
		},
	}
	cmd.Flags().StringVar(&data.Name, "name", "", "full name")
	cmd.Flags().StringVar(&data.Email, "email", "", "account e-mail")
	cmd.Flags().StringVar(&data.Password, "password", "", "account password, at least 6 characters (prompted when empty)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func logoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenProfile, func(ctx context.Context, a *app) error {
				if err := a.sessions.SignOut(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
				return nil
			})
		},
	}
}

func whoamiCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Aliases: []string{"profile"},
		Short:   "Show the signed-in user",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenProfile, func(_ context.Context, a *app) error {
				return printProfile(cmd.OutOrStdout(), a.sessions.Snapshot().User)
			})
		},
	}
}

func routesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the screens reachable with the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, "", func(_ context.Context, a *app) error {
				routes := domain.Gate(a.sessions.Snapshot())
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "state: %s\n", routes.State)
				if routes.State == domain.GateAuthenticated {
					fmt.Fprintf(out, "role: %s\n", routes.Role)
				}
				for i, s := range routes.Screens {
					marker := " "
					if i == 0 {
						marker = "*"
					}
					fmt.Fprintf(out, "%s %s\n", marker, s)
				}
				return nil
			})
		},
	}
}

func homeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the role dashboard and upcoming appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenHome, func(ctx context.Context, a *app) error {
				session := a.sessions.Snapshot()
				out := cmd.OutOrStdout()
				if dashboard, ok := domain.Gate(session).Initial(); ok {
					fmt.Fprintf(out, "%s · %s (%s)\n\n", dashboard, session.User.Name, session.User.Role.Label())
				}
				appointments, err := a.appointments.Mine(ctx)
				if err != nil {
					return err
				}
				return printAppointments(out, appointments)
			})
		},
	}
}

// readSecret reads one line from the command's input.
func readSecret(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
