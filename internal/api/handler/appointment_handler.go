package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/pkg/metrics"
	"github.com/medagenda/medapp/internal/sandbox"
)

const dataHoraLayout = "2006-01-02T15:04:05"

type AppointmentHandler struct {
	dir *sandbox.Directory
	loc *time.Location
	log zerolog.Logger
}

// NewAppointmentHandler stores timestamps as zone-less local time in loc
// (time.Local when nil).
func NewAppointmentHandler(dir *sandbox.Directory, loc *time.Location, log zerolog.Logger) *AppointmentHandler {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentHandler{dir: dir, loc: loc, log: log}
}

// List handles GET /consultas[?usuarioId=&medicoId=]. Patients and doctors
// only ever see their own appointments.
func (h *AppointmentHandler) List(c echo.Context) error {
	id, tipo, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var q sandbox.AppointmentQuery
	if q.PatientID, err = queryID(c, "usuarioId"); err != nil {
		return err
	}
	if q.DoctorID, err = queryID(c, "medicoId"); err != nil {
		return err
	}

	switch tipo {
	case sandbox.TipoPaciente:
		if q.PatientID != 0 && q.PatientID != id {
			return domain.ErrForbidden
		}
		q.PatientID = id
	case sandbox.TipoMedico:
		if q.DoctorID != 0 && q.DoctorID != id {
			return domain.ErrForbidden
		}
		q.DoctorID = id
	}

	return c.JSON(http.StatusOK, toAppointmentResponses(h.dir.Appointments(q)))
}

// Create handles POST /consultas (ADMIN, PACIENTE). Patients book for
// themselves only.
func (h *AppointmentHandler) Create(c echo.Context) error {
	id, tipo, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req createAppointmentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if tipo == sandbox.TipoPaciente && req.UsuarioID != id {
		return domain.ErrForbidden
	}

	at, err := h.parseDataHora(req.DataHora)
	if err != nil {
		return err
	}

	appt, err := h.dir.CreateAppointment(sandbox.Appointment{
		DataHora:  at.Format(dataHoraLayout),
		Specialty: req.Especialidade,
		PatientID: req.UsuarioID,
		DoctorID:  req.MedicoID,
		Notes:     req.Observacao,
	})
	if err != nil {
		return err
	}

	metrics.SandboxAppointmentsTotal.WithLabelValues(appt.Status).Inc()
	h.log.Info().Int64("appointment_id", appt.ID).Int64("patient_id", appt.PatientID).Msg("sandbox appointment created")
	return c.JSON(http.StatusCreated, toAppointmentResponse(appt))
}

// UpdateStatus handles PUT /consultas/:id/status. Doctors may move their own
// appointments; patients may only cancel theirs.
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	callerID, tipo, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	current, err := h.dir.Appointment(id)
	if err != nil {
		return err
	}
	if !mayUpdate(callerID, tipo, current, req.Status) {
		return domain.ErrForbidden
	}

	updated, err := h.dir.SetAppointmentStatus(id, req.Status)
	if err != nil {
		return err
	}

	metrics.SandboxAppointmentsTotal.WithLabelValues(updated.Status).Inc()
	h.log.Info().
		Int64("appointment_id", id).
		Str("from", current.Status).
		Str("to", updated.Status).
		Msg("sandbox appointment status changed")
	return c.JSON(http.StatusOK, toAppointmentResponse(updated))
}

func mayUpdate(callerID int64, tipo string, a sandbox.Appointment, status string) bool {
	switch tipo {
	case sandbox.TipoAdmin:
		return true
	case sandbox.TipoMedico:
		return a.DoctorID == callerID
	case sandbox.TipoPaciente:
		return a.PatientID == callerID && status == sandbox.StatusCancelada
	default:
		return false
	}
}

func (h *AppointmentHandler) parseDataHora(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(h.loc), nil
	}
	t, err := time.ParseInLocation(dataHoraLayout, s, h.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dataHora must be RFC3339 or %s", domain.ErrInvalidInput, dataHoraLayout)
	}
	return t, nil
}
