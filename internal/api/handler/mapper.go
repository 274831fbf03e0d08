package handler

import "github.com/medagenda/medapp/internal/sandbox"

// --- Sandbox state → HTTP response ---

func toUserResponse(a sandbox.Account) userResponse {
	return userResponse{
		ID:            a.ID,
		Nome:          a.Name,
		Email:         a.Email,
		Tipo:          a.Tipo,
		Especialidade: a.Specialty,
	}
}

func toUserResponses(accounts []sandbox.Account) []userResponse {
	out := make([]userResponse, len(accounts))
	for i, a := range accounts {
		out[i] = toUserResponse(a)
	}
	return out
}

func toSpecialtyResponses(specialties []sandbox.Specialty) []specialtyResponse {
	out := make([]specialtyResponse, len(specialties))
	for i, s := range specialties {
		out[i] = specialtyResponse{ID: s.ID, Nome: s.Name}
	}
	return out
}

func toAppointmentResponse(a sandbox.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:            a.ID,
		DataHora:      a.DataHora,
		Especialidade: a.Specialty,
		UsuarioID:     a.PatientID,
		MedicoID:      a.DoctorID,
		Observacao:    a.Notes,
		Status:        a.Status,
	}
}

func toAppointmentResponses(appointments []sandbox.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, len(appointments))
	for i, a := range appointments {
		out[i] = toAppointmentResponse(a)
	}
	return out
}
