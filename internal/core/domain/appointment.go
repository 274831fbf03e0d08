package domain

import "time"

// AppointmentStatus represents the lifecycle state of a consultation.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Label returns the display text for s.
func (s AppointmentStatus) Label() string {
	switch s {
	case StatusConfirmed:
		return "Confirmada"
	case StatusCancelled:
		return "Cancelada"
	case StatusCompleted:
		return "Realizada"
	default:
		return "Pendente"
	}
}

// Appointment is a consultation between a patient and a doctor.
type Appointment struct {
	ID        string            `json:"id"`
	At        time.Time         `json:"at"`
	Date      string            `json:"date"` // YYYY-MM-DD
	Time      string            `json:"time"` // HH:MM
	Specialty string            `json:"specialty"`
	PatientID string            `json:"patient_id"`
	DoctorID  string            `json:"doctor_id"`
	Notes     string            `json:"notes"`
	Status    AppointmentStatus `json:"status"`
}

// NewAppointment carries what the backend needs to book a consultation.
type NewAppointment struct {
	At        time.Time
	Specialty string
	PatientID string
	DoctorID  string
	Notes     string
}

// AppointmentFilter narrows an appointment listing. Empty fields do not filter.
type AppointmentFilter struct {
	PatientID string
	DoctorID  string
}
