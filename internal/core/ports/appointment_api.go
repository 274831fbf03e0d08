package ports

import (
	"context"

	"github.com/medagenda/medapp/internal/core/domain"
)

// AppointmentAPI is the backend's consultation surface.
type AppointmentAPI interface {
	Create(ctx context.Context, token string, in domain.NewAppointment) (*domain.Appointment, error)
	List(ctx context.Context, token string, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, token, id string, status domain.AppointmentStatus) (*domain.Appointment, error)
}
