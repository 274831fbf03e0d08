package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
	"github.com/medagenda/medapp/internal/core/service"
)

func appointmentsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "List, book and update appointments",
	}
	cmd.AddCommand(appointmentsListCmd(opts))
	cmd.AddCommand(appointmentsCreateCmd(opts))
	cmd.AddCommand(appointmentStatusCmd(opts, "confirm", "Confirm a scheduled appointment", (*service.AppointmentService).Confirm))
	cmd.AddCommand(appointmentStatusCmd(opts, "cancel", "Cancel an appointment", (*service.AppointmentService).Cancel))
	cmd.AddCommand(appointmentStatusCmd(opts, "complete", "Mark a confirmed appointment as completed", (*service.AppointmentService).Complete))
	return cmd
}

type statusAction func(s *service.AppointmentService, ctx context.Context, id string) (*domain.Appointment, error)

func appointmentsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the appointments visible to the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenHome, func(ctx context.Context, a *app) error {
				appointments, err := a.appointments.Mine(ctx)
				if err != nil {
					return err
				}
				return printAppointments(cmd.OutOrStdout(), appointments)
			})
		},
	}
}

func appointmentsCreateCmd(opts *rootOptions) *cobra.Command {
	var form ports.AppointmentForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book an appointment with a doctor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts, domain.ScreenCreateAppointment, func(ctx context.Context, a *app) error {
				appt, err := a.appointments.Create(ctx, form)
				if err != nil {
					return err
				}
				return printAppointments(cmd.OutOrStdout(), []domain.Appointment{*appt})
			})
		},
	}
	cmd.Flags().StringVar(&form.DoctorID, "doctor", "", "doctor id")
	cmd.Flags().StringVar(&form.Specialty, "specialty", "", "specialty name")
	cmd.Flags().StringVar(&form.Date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Time, "time", "", "time as HH:MM")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "notes for the doctor")
	return cmd
}

func appointmentStatusCmd(opts *rootOptions, use, short string, action statusAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, domain.ScreenHome, func(ctx context.Context, a *app) error {
				appt, err := action(a.appointments, ctx, args[0])
				if err != nil {
					return err
				}
				return printAppointments(cmd.OutOrStdout(), []domain.Appointment{*appt})
			})
		},
	}
}
