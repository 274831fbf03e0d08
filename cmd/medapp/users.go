package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
)

func usersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administer user accounts",
	}
	cmd.AddCommand(usersListCmd(opts))
	cmd.AddCommand(usersPasswdCmd(opts))
	return cmd
}

func usersListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenAdminDashboard, func(ctx context.Context, a *app) error {
				users, err := a.admin.Users(ctx)
				if err != nil {
					return err
				}
				return printUsers(cmd.OutOrStdout(), users)
			})
		},
	}
}

func usersPasswdCmd(opts *rootOptions) *cobra.Command {
	var change ports.PasswordChange

	cmd := &cobra.Command{
		Use:   "passwd <user-id>",
		Short: "Set a new password for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			change.UserID = args[0]
			return run(cmd, opts, domain.ScreenAdminDashboard, func(ctx context.Context, a *app) error {
				if change.NewPassword == "" {
					pw, err := readSecret(cmd, "New password: ")
					if err != nil {
						return err
					}
					change.NewPassword = pw
				}
				if err := a.admin.ChangePassword(ctx, change); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Password updated for user %s.\n", change.UserID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&change.NewPassword, "password", "", "new password, at least 6 characters (prompted when empty)")
	return cmd
}
