package domain

// Role is the frontend role string carried by a User ("admin", "doctor",
// "patient"). Any other value is preserved as-is and reported as RoleUnknown.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// RoleKind is the closed set of role variants the application handles.
type RoleKind int

const (
	RoleKindUnknown RoleKind = iota
	RoleKindAdmin
	RoleKindDoctor
	RoleKindPatient
)

// Kind classifies r by exact match.
func (r Role) Kind() RoleKind {
	switch r {
	case RoleAdmin:
		return RoleKindAdmin
	case RoleDoctor:
		return RoleKindDoctor
	case RolePatient:
		return RoleKindPatient
	default:
		return RoleKindUnknown
	}
}

// Label returns the display name used on screens.
func (r Role) Label() string {
	switch r.Kind() {
	case RoleKindAdmin:
		return "Administrador"
	case RoleKindDoctor:
		return "Médico"
	case RoleKindPatient:
		return "Paciente"
	default:
		return string(r)
	}
}

func (k RoleKind) String() string {
	switch k {
	case RoleKindAdmin:
		return "admin"
	case RoleKindDoctor:
		return "doctor"
	case RoleKindPatient:
		return "patient"
	default:
		return "unknown"
	}
}

// SpecialtyPlaceholder is shown for doctors whose specialty the backend did
// not report.
const SpecialtyPlaceholder = "Especialidade não informada"

// User is the signed-in account as the client sees it. It is built from a
// backend response and replaced wholesale on every auth event.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Image     string `json:"image"`
	Specialty string `json:"specialty,omitempty"`
}

// Credentials is the sign-in form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterData is the sign-up form. New accounts are always patients.
type RegisterData struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Credentials returns the sign-in form matching d.
func (d RegisterData) Credentials() Credentials {
	return Credentials{Email: d.Email, Password: d.Password}
}

// Doctor is the card shown when choosing who to book with.
type Doctor struct {
	ID        string
	Name      string
	Specialty string
	Image     string
}

// DoctorFromUser converts a user listing entry into a doctor card.
func DoctorFromUser(u User) Doctor {
	specialty := SpecialtyPlaceholder
	if u.Role == RoleDoctor && u.Specialty != "" {
		specialty = u.Specialty
	}
	return Doctor{ID: u.ID, Name: u.Name, Specialty: specialty, Image: u.Image}
}
