package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/infrastructure/apiclient"
)

// AppointmentsAPI implements ports.AppointmentAPI. Zone-less backend
// timestamps are read and written in loc.
type AppointmentsAPI struct {
	client *apiclient.Client
	loc    *time.Location
}

// NewAppointmentsAPI uses time.Local when loc is nil.
func NewAppointmentsAPI(client *apiclient.Client, loc *time.Location) *AppointmentsAPI {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentsAPI{client: client, loc: loc}
}

// Create books an appointment in the AGENDADA state.
func (a *AppointmentsAPI) Create(ctx context.Context, token string, in domain.NewAppointment) (*domain.Appointment, error) {
	req, err := toCreateRequest(in, a.loc)
	if err != nil {
		return nil, fmt.Errorf("appointments: create: %w", err)
	}

	var dto appointmentDTO
	if err := a.client.WithToken(token).Post(ctx, apiclient.PathAppointments, req, &dto); err != nil {
		return nil, fmt.Errorf("appointments: create: %w", err)
	}
	appt, err := MapAppointment(dto, a.loc)
	if err != nil {
		return nil, fmt.Errorf("appointments: create: %w", err)
	}
	return appt, nil
}

// List returns appointments matching filter.
func (a *AppointmentsAPI) List(ctx context.Context, token string, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	query := url.Values{}
	if filter.PatientID != "" {
		query.Set("usuarioId", filter.PatientID)
	}
	if filter.DoctorID != "" {
		query.Set("medicoId", filter.DoctorID)
	}
	path := apiclient.PathAppointments
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var dtos []appointmentDTO
	if err := a.client.WithToken(token).Get(ctx, path, &dtos); err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	out := make([]domain.Appointment, 0, len(dtos))
	for _, d := range dtos {
		appt, err := MapAppointment(d, a.loc)
		if err != nil {
			return nil, fmt.Errorf("appointments: list: %w", err)
		}
		out = append(out, *appt)
	}
	return out, nil
}

// UpdateStatus moves appointment id to status. When the backend answers with
// no body the returned appointment carries only the id and the new status.
func (a *AppointmentsAPI) UpdateStatus(ctx context.Context, token, id string, status domain.AppointmentStatus) (*domain.Appointment, error) {
	backendStatus, err := toBackendStatus(status)
	if err != nil {
		return nil, fmt.Errorf("appointments: update status: %w", err)
	}

	path := fmt.Sprintf("%s/%s/status", apiclient.PathAppointments, url.PathEscape(id))
	var dto appointmentDTO
	if err := a.client.WithToken(token).Put(ctx, path, updateStatusRequest{Status: backendStatus}, &dto); err != nil {
		if apiclient.HasStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("appointments: update status: %w", domain.ErrAppointmentNotFound)
		}
		return nil, fmt.Errorf("appointments: update status: %w", err)
	}
	if dto.ID == 0 {
		return &domain.Appointment{ID: id, Status: status}, nil
	}
	appt, err := MapAppointment(dto, a.loc)
	if err != nil {
		return nil, fmt.Errorf("appointments: update status: %w", err)
	}
	return appt, nil
}
