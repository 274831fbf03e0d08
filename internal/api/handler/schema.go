package handler

// --- Request / Response types ---
//
// Field names follow the backend's Portuguese JSON contract.

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type createUserRequest struct {
	Nome          string `json:"nome"          validate:"required"`
	Email         string `json:"email"         validate:"required,email"`
	Senha         string `json:"senha"         validate:"required,min=6"`
	Tipo          string `json:"tipo"          validate:"omitempty,oneof=ADMIN MEDICO PACIENTE"`
	Especialidade string `json:"especialidade" validate:"required_if=Tipo MEDICO"`
}

type userResponse struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	Tipo          string `json:"tipo"`
	Especialidade string `json:"especialidade,omitempty"`
}

type changePasswordRequest struct {
	NovaSenha string `json:"novaSenha" validate:"required,min=6"`
}

type specialtyResponse struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

type createAppointmentRequest struct {
	DataHora      string `json:"dataHora"      validate:"required"`
	Especialidade string `json:"especialidade" validate:"required"`
	UsuarioID     int64  `json:"usuarioId"     validate:"required,gt=0"`
	MedicoID      int64  `json:"medicoId"      validate:"required,gt=0"`
	Observacao    string `json:"observacao"`
	Status        string `json:"status"        validate:"omitempty,eq=AGENDADA"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMADA CANCELADA REALIZADA"`
}

type appointmentResponse struct {
	ID            int64  `json:"id"`
	DataHora      string `json:"dataHora"`
	Especialidade string `json:"especialidade"`
	UsuarioID     int64  `json:"usuarioId"`
	MedicoID      int64  `json:"medicoId"`
	Observacao    string `json:"observacao"`
	Status        string `json:"status"`
}
