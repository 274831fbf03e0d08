package backend

import (
	"fmt"
	"strconv"
	"time"

	"github.com/medagenda/medapp/internal/core/domain"
)

// --- Backend → domain ---

// MapRole converts a backend "tipo" to a domain role. Unrecognised values are
// an error, never a default.
func MapRole(tipo string) (domain.Role, error) {
	switch tipo {
	case tipoAdmin:
		return domain.RoleAdmin, nil
	case tipoMedico:
		return domain.RoleDoctor, nil
	case tipoPaciente:
		return domain.RolePatient, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownRole, tipo)
	}
}

// MapUser converts a backend user, deriving the avatar from the id.
func MapUser(u userDTO) (*domain.User, error) {
	role, err := MapRole(u.Tipo)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:    strconv.FormatInt(u.ID, 10),
		Name:  u.Nome,
		Email: u.Email,
		Role:  role,
		Image: avatarURL(u.ID),
	}
	if role == domain.RoleDoctor {
		user.Specialty = u.Especialidade
		if user.Specialty == "" {
			user.Specialty = domain.SpecialtyPlaceholder
		}
	}
	return user, nil
}

func mapUsers(in []userDTO) ([]domain.User, error) {
	out := make([]domain.User, 0, len(in))
	for _, u := range in {
		mapped, err := MapUser(u)
		if err != nil {
			return nil, fmt.Errorf("user %d: %w", u.ID, err)
		}
		out = append(out, *mapped)
	}
	return out, nil
}

func avatarURL(id int64) string {
	gender := "women"
	if id%2 == 0 {
		gender = "men"
	}
	n := id % 10
	if n < 0 {
		n = -n
	}
	return fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, n+1)
}

func mapSpecialty(s specialtyDTO) domain.Specialty {
	return domain.Specialty{ID: strconv.FormatInt(s.ID, 10), Name: s.Nome}
}

// MapStatus converts a backend status. Unknown values read as scheduled.
func MapStatus(status string) domain.AppointmentStatus {
	switch status {
	case statusConfirmada:
		return domain.StatusConfirmed
	case statusCancelada:
		return domain.StatusCancelled
	case statusRealizada:
		return domain.StatusCompleted
	default:
		return domain.StatusScheduled
	}
}

// MapAppointment converts a backend appointment, splitting dataHora into a
// date and a time of day in loc.
func MapAppointment(a appointmentDTO, loc *time.Location) (*domain.Appointment, error) {
	at, err := parseDataHora(a.DataHora, loc)
	if err != nil {
		return nil, fmt.Errorf("appointment %d: %w", a.ID, err)
	}
	local := at.In(loc)
	return &domain.Appointment{
		ID:        strconv.FormatInt(a.ID, 10),
		At:        at,
		Date:      local.Format("2006-01-02"),
		Time:      local.Format("15:04"),
		Specialty: a.Especialidade,
		PatientID: strconv.FormatInt(a.UsuarioID, 10),
		DoctorID:  strconv.FormatInt(a.MedicoID, 10),
		Notes:     a.Observacao,
		Status:    MapStatus(a.Status),
	}, nil
}

func parseDataHora(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dataHoraLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid dataHora %q", s)
	}
	return t, nil
}

// --- Domain → backend ---

func toBackendStatus(s domain.AppointmentStatus) (string, error) {
	switch s {
	case domain.StatusScheduled:
		return statusAgendada, nil
	case domain.StatusConfirmed:
		return statusConfirmada, nil
	case domain.StatusCancelled:
		return statusCancelada, nil
	case domain.StatusCompleted:
		return statusRealizada, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, s)
	}
}

func toCreateRequest(in domain.NewAppointment, loc *time.Location) (createAppointmentRequest, error) {
	patientID, err := parseID("patient", in.PatientID)
	if err != nil {
		return createAppointmentRequest{}, err
	}
	doctorID, err := parseID("doctor", in.DoctorID)
	if err != nil {
		return createAppointmentRequest{}, err
	}
	return createAppointmentRequest{
		DataHora:      in.At.In(loc).Format(dataHoraLayout),
		Especialidade: in.Specialty,
		UsuarioID:     patientID,
		MedicoID:      doctorID,
		Observacao:    in.Notes,
		Status:        statusAgendada,
	}, nil
}

// parseID accepts the decimal ids MapUser produces.
func parseID(field, id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s id %q is not numeric", domain.ErrInvalidInput, field, id)
	}
	return n, nil
}
