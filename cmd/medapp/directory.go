package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/medagenda/medapp/internal/core/domain"
)

func specialtiesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "specialties",
		Short: "List medical specialties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenCreateAppointment, func(ctx context.Context, a *app) error {
				specialties, err := a.directory.Specialties(ctx)
				if err != nil {
					return err
				}
				return printSpecialties(cmd.OutOrStdout(), specialties)
			})
		},
	}
}

func doctorsCmd(opts *rootOptions) *cobra.Command {
	var specialty string

	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "List doctors, optionally by specialty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenCreateAppointment, func(ctx context.Context, a *app) error {
				doctors, err := a.directory.Doctors(ctx, specialty)
				if err != nil {
					return err
				}
				return printDoctors(cmd.OutOrStdout(), doctors)
			})
		},
	}
	cmd.Flags().StringVar(&specialty, "specialty", "", "only doctors of this specialty")
	return cmd
}
