package backend

// Wire types. Field names follow the backend's Portuguese JSON contract.

// Backend role values ("tipo").
const (
	tipoAdmin    = "ADMIN"
	tipoMedico   = "MEDICO"
	tipoPaciente = "PACIENTE"
)

// Backend appointment status values.
const (
	statusAgendada   = "AGENDADA"
	statusConfirmada = "CONFIRMADA"
	statusCancelada  = "CANCELADA"
	statusRealizada  = "REALIZADA"
)

// dataHoraLayout is the zone-less timestamp layout the backend writes.
const dataHoraLayout = "2006-01-02T15:04:05"

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Tipo  string `json:"tipo"`
}

type userDTO struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Tipo          string `json:"tipo"`
	Especialidade string `json:"especialidade,omitempty"`
}

type changePasswordRequest struct {
	NovaSenha string `json:"novaSenha"`
}

type specialtyDTO struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

type appointmentDTO struct {
	ID            int64  `json:"id"`
	DataHora      string `json:"dataHora"`
	Especialidade string `json:"especialidade"`
	UsuarioID     int64  `json:"usuarioId"`
	MedicoID      int64  `json:"medicoId"`
	Observacao    string `json:"observacao"`
	Status        string `json:"status"`
}

type createAppointmentRequest struct {
	DataHora      string `json:"dataHora"`
	Especialidade string `json:"especialidade"`
	UsuarioID     int64  `json:"usuarioId"`
	MedicoID      int64  `json:"medicoId"`
	Observacao    string `json:"observacao"`
	Status        string `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}
