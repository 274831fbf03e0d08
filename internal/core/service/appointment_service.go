package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
)

// AppointmentService backs the booking form and the per-role dashboards.
type AppointmentService struct {
	api      ports.AppointmentAPI
	sessions ports.SessionReader
	loc      *time.Location
	logger   zerolog.Logger
}

// NewAppointmentService returns a service interpreting form dates in loc
// (time.Local when nil).
func NewAppointmentService(api ports.AppointmentAPI, sessions ports.SessionReader, loc *time.Location, logger zerolog.Logger) *AppointmentService {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentService{api: api, sessions: sessions, loc: loc, logger: logger}
}

// Create books a consultation for the signed-in user.
func (s *AppointmentService) Create(ctx context.Context, form ports.AppointmentForm) (*domain.Appointment, error) {
	session, err := currentSession(s.sessions)
	if err != nil {
		return nil, err
	}
	if err := validateForm(form); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	at, err := time.ParseInLocation("2006-01-02 15:04", form.Date+" "+form.Time, s.loc)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w: %v", domain.ErrInvalidInput, err)
	}

	appointment, err := s.api.Create(ctx, session.Token, domain.NewAppointment{
		At:        at,
		Specialty: form.Specialty,
		PatientID: session.User.ID,
		DoctorID:  form.DoctorID,
		Notes:     form.Notes,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("doctor_id", form.DoctorID).Msg("failed to create appointment")
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.logger.Info().Str("appointment_id", appointment.ID).Str("patient_id", session.User.ID).Msg("appointment created")
	return appointment, nil
}

// Mine lists the appointments the signed-in user's dashboard shows: a
// patient's own, a doctor's own, or every appointment for an admin.
func (s *AppointmentService) Mine(ctx context.Context) ([]domain.Appointment, error) {
	session, err := currentSession(s.sessions)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, session)
}

// Confirm marks a scheduled appointment as confirmed.
func (s *AppointmentService) Confirm(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.transition(ctx, id, domain.StatusConfirmed)
}

// Cancel cancels a scheduled or confirmed appointment.
func (s *AppointmentService) Cancel(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

// Complete marks a confirmed appointment as held.
func (s *AppointmentService) Complete(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.transition(ctx, id, domain.StatusCompleted)
}

func (s *AppointmentService) list(ctx context.Context, session domain.Session) ([]domain.Appointment, error) {
	var filter domain.AppointmentFilter
	switch session.User.Role.Kind() {
	case domain.RoleKindPatient:
		filter.PatientID = session.User.ID
	case domain.RoleKindDoctor:
		filter.DoctorID = session.User.ID
	case domain.RoleKindAdmin:
	default:
		return nil, fmt.Errorf("list appointments: %w", domain.ErrForbidden)
	}

	appointments, err := s.api.List(ctx, session.Token, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", session.User.ID).Msg("failed to load appointments")
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appointments, nil
}

func (s *AppointmentService) transition(ctx context.Context, id string, next domain.AppointmentStatus) (*domain.Appointment, error) {
	session, err := currentSession(s.sessions)
	if err != nil {
		return nil, err
	}

	visible, err := s.list(ctx, session)
	if err != nil {
		return nil, err
	}

	var current *domain.Appointment
	for i := range visible {
		if visible[i].ID == id {
			current = &visible[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("update appointment %s: %w", id, domain.ErrAppointmentNotFound)
	}

	if !mayTransition(session.User, current, next) {
		return nil, fmt.Errorf("update appointment %s: %w", id, domain.ErrForbidden)
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("update appointment %s: %w (from %s to %s)", id, domain.ErrInvalidTransition, current.Status, next)
	}

	updated, err := s.api.UpdateStatus(ctx, session.Token, id, next)
	if err != nil {
		s.logger.Error().Err(err).Str("appointment_id", id).Msg("failed to update appointment status")
		return nil, fmt.Errorf("update appointment %s: %w", id, err)
	}

	s.logger.Info().
		Str("appointment_id", id).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Str("user_id", session.User.ID).
		Msg("appointment status changed")
	return updated, nil
}

// mayTransition: admins may change anything, doctors their own appointments,
// patients may only cancel their own.
func mayTransition(u *domain.User, a *domain.Appointment, next domain.AppointmentStatus) bool {
	switch u.Role.Kind() {
	case domain.RoleKindAdmin:
		return true
	case domain.RoleKindDoctor:
		return a.DoctorID == u.ID
	case domain.RoleKindPatient:
		return a.PatientID == u.ID && next == domain.StatusCancelled
	default:
		return false
	}
}
