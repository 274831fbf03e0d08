package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")

	// ErrUnknownRole is returned when the backend reports a user type outside
	// ADMIN/MEDICO/PACIENTE. It is never defaulted.
	ErrUnknownRole = errors.New("unknown user role")

	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrSessionBusy       = errors.New("another session operation is in progress")
	ErrScreenUnavailable = errors.New("screen not reachable")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrSpecialtyNotFound   = errors.New("specialty not found")
)
