package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/medapp/internal/api/middleware"
	"github.com/medagenda/medapp/internal/sandbox"
)

// Seeded ids: 1 admin, 2 cardiologist, 3 pediatrician, 4 patient.
const (
	adminID   int64 = 1
	doctorID  int64 = 2
	patientID int64 = 4
)

type fixture struct {
	e      *echo.Echo
	dir    *sandbox.Directory
	tokens *sandbox.Tokens
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := sandbox.NewDirectory(bcrypt.MinCost)
	if err := sandbox.Seed(dir, "senha123"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	e := echo.New()
	e.Validator = NewValidator()
	return &fixture{e: e, dir: dir, tokens: sandbox.NewTokens("secret", time.Hour)}
}

// request builds a context, optionally authenticated as (id, tipo).
func (f *fixture) request(method, target, body string, id int64, tipo string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	if id != 0 {
		c.Set(middleware.ContextAccountID, id)
		c.Set(middleware.ContextTipo, tipo)
	}
	return c, rec
}

// statusOf runs h and returns the response code, resolving returned errors
// the way echo's default handler does.
func (f *fixture) statusOf(t *testing.T, h echo.HandlerFunc, c echo.Context, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err := h(c); err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return he.Code
		}
		return -1 // domain error, mapped by the router's error handler
	}
	return rec.Code
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

func TestUserHandler_Login(t *testing.T) {
	f := newFixture(t)
	h := NewUserHandler(f.dir, f.tokens, zerolog.Nop())

	c, rec := f.request(http.MethodPost, "/usuarios/login", `{"email":"maria@medapp.dev","senha":"senha123"}`, 0, "")
	if code := f.statusOf(t, h.Login, c, rec); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	resp := decode[loginResponse](t, rec)
	claims, err := f.tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "4" || claims.Tipo != sandbox.TipoPaciente {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestUserHandler_Login_BadPayload(t *testing.T) {
	f := newFixture(t)
	h := NewUserHandler(f.dir, f.tokens, zerolog.Nop())

	c, rec := f.request(http.MethodPost, "/usuarios/login", `{"email":"not-an-email"}`, 0, "")
	if code := f.statusOf(t, h.Login, c, rec); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestUserHandler_Register(t *testing.T) {
	f := newFixture(t)
	h := NewUserHandler(f.dir, f.tokens, zerolog.Nop())

	c, rec := f.request(http.MethodPost, "/usuarios", `{"nome":"João","email":"joao@x.com","senha":"segredo"}`, 0, "")
	if code := f.statusOf(t, h.Register, c, rec); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", code)
	}
	user := decode[userResponse](t, rec)
	if user.Tipo != sandbox.TipoPaciente || user.ID == 0 {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestUserHandler_Register_DoctorNeedsAdmin(t *testing.T) {
	f := newFixture(t)
	h := NewUserHandler(f.dir, f.tokens, zerolog.Nop())
	body := `{"nome":"Dr. X","email":"x@x.com","senha":"segredo","tipo":"MEDICO","especialidade":"Pediatria"}`

	c, rec := f.request(http.MethodPost, "/usuarios", body, 0, "")
	if code := f.statusOf(t, h.Register, c, rec); code != -1 {
		t.Fatalf("expected forbidden domain error, got %d", code)
	}

	admin, _ := f.dir.Account(adminID)
	token, _ := f.tokens.Issue(admin)
	c, rec = f.request(http.MethodPost, "/usuarios", body, 0, "")
	c.Request().Header.Set("Authorization", "Bearer "+token)
	if code := f.statusOf(t, h.Register, c, rec); code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d", code)
	}
	if user := decode[userResponse](t, rec); user.Especialidade != "Pediatria" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestUserHandler_Me(t *testing.T) {
	f := newFixture(t)
	h := NewUserHandler(f.dir, f.tokens, zerolog.Nop())

	c, rec := f.request(http.MethodGet, "/usuarios/me", "", doctorID, sandbox.TipoMedico)
	if code := f.statusOf(t, h.Me, c, rec); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if user := decode[userResponse](t, rec); user.Email != "ana.souza@medapp.dev" || user.Especialidade != "Cardiologia" {
		t.Errorf("unexpected user %+v", user)
	}

	c, rec = f.request(http.MethodGet, "/usuarios/me", "", 0, "")
	if code := f.statusOf(t, h.Me, c, rec); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", code)
	}
}

func TestUserHandler_Doctors(t *testing.T) {
	f := newFixture(t)
	h := NewUserHandler(f.dir, f.tokens, zerolog.Nop())

	c, rec := f.request(http.MethodGet, "/usuarios/medicos?especialidade=Cardiologia", "", patientID, sandbox.TipoPaciente)
	if code := f.statusOf(t, h.Doctors, c, rec); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if doctors := decode[[]userResponse](t, rec); len(doctors) != 1 || doctors[0].ID != doctorID {
		t.Errorf("unexpected doctors %+v", doctors)
	}
}

func TestUserHandler_ChangePassword(t *testing.T) {
	f := newFixture(t)
	h := NewUserHandler(f.dir, f.tokens, zerolog.Nop())

	c, rec := f.request(http.MethodPut, "/usuarios/4/senha", `{"novaSenha":"trocada1"}`, adminID, sandbox.TipoAdmin)
	c.SetParamNames("id")
	c.SetParamValues("4")
	if code := f.statusOf(t, h.ChangePassword, c, rec); code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", code)
	}
	if _, err := f.dir.Authenticate("maria@medapp.dev", "trocada1"); err != nil {
		t.Fatalf("password not changed: %v", err)
	}

	c, rec = f.request(http.MethodPut, "/usuarios/abc/senha", `{"novaSenha":"trocada1"}`, adminID, sandbox.TipoAdmin)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if code := f.statusOf(t, h.ChangePassword, c, rec); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", code)
	}
}

// ---------------------------------------------------------------------------
// Appointments
// ---------------------------------------------------------------------------

func bookOne(t *testing.T, f *fixture) sandbox.Appointment {
	t.Helper()
	appt, err := f.dir.CreateAppointment(sandbox.Appointment{
		DataHora: "2026-07-01T10:00:00", Specialty: "Cardiologia", PatientID: patientID, DoctorID: doctorID,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return appt
}

func TestAppointmentHandler_Create(t *testing.T) {
	f := newFixture(t)
	h := NewAppointmentHandler(f.dir, time.UTC, zerolog.Nop())

	body := `{"dataHora":"2026-07-01T13:00:00Z","especialidade":"Cardiologia","usuarioId":4,"medicoId":2,"observacao":"","status":"AGENDADA"}`
	c, rec := f.request(http.MethodPost, "/consultas", body, patientID, sandbox.TipoPaciente)
	if code := f.statusOf(t, h.Create, c, rec); code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", code, rec.Body.String())
	}
	appt := decode[appointmentResponse](t, rec)
	if appt.DataHora != "2026-07-01T13:00:00" || appt.Status != sandbox.StatusAgendada {
		t.Errorf("unexpected appointment %+v", appt)
	}
}

func TestAppointmentHandler_Create_ForSomeoneElse(t *testing.T) {
	f := newFixture(t)
	h := NewAppointmentHandler(f.dir, time.UTC, zerolog.Nop())

	body := `{"dataHora":"2026-07-01T13:00:00","especialidade":"Cardiologia","usuarioId":99,"medicoId":2}`
	c, rec := f.request(http.MethodPost, "/consultas", body, patientID, sandbox.TipoPaciente)
	if code := f.statusOf(t, h.Create, c, rec); code != -1 {
		t.Fatalf("expected forbidden domain error, got %d", code)
	}
}

func TestAppointmentHandler_List_ScopedToCaller(t *testing.T) {
	f := newFixture(t)
	h := NewAppointmentHandler(f.dir, time.UTC, zerolog.Nop())
	bookOne(t, f)

	tests := []struct {
		name   string
		target string
		id     int64
		tipo   string
		code   int
		count  int
	}{
		{"patient own", "/consultas", patientID, sandbox.TipoPaciente, http.StatusOK, 1},
		{"doctor own", "/consultas", doctorID, sandbox.TipoMedico, http.StatusOK, 1},
		{"other doctor", "/consultas", 3, sandbox.TipoMedico, http.StatusOK, 0},
		{"admin filter", "/consultas?medicoId=3", adminID, sandbox.TipoAdmin, http.StatusOK, 0},
		{"patient peeking", "/consultas?usuarioId=1", patientID, sandbox.TipoPaciente, -1, 0},
		{"bad query", "/consultas?medicoId=x", adminID, sandbox.TipoAdmin, http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := f.request(http.MethodGet, tt.target, "", tt.id, tt.tipo)
			code := f.statusOf(t, h.List, c, rec)
			if code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, code)
			}
			if code == http.StatusOK {
				if got := decode[[]appointmentResponse](t, rec); len(got) != tt.count {
					t.Errorf("expected %d appointments, got %d", tt.count, len(got))
				}
			}
		})
	}
}

func TestAppointmentHandler_UpdateStatus(t *testing.T) {
	f := newFixture(t)
	h := NewAppointmentHandler(f.dir, time.UTC, zerolog.Nop())
	appt := bookOne(t, f)
	target := "/consultas/1/status"

	run := func(body string, id int64, tipo string) (int, *httptest.ResponseRecorder) {
		c, rec := f.request(http.MethodPut, target, body, id, tipo)
		c.SetParamNames("id")
		c.SetParamValues("1")
		return f.statusOf(t, h.UpdateStatus, c, rec), rec
	}

	if code, _ := run(`{"status":"CONFIRMADA"}`, patientID, sandbox.TipoPaciente); code != -1 {
		t.Fatalf("patient confirming: expected forbidden, got %d", code)
	}
	if code, _ := run(`{"status":"ADIADA"}`, doctorID, sandbox.TipoMedico); code != http.StatusBadRequest {
		t.Fatalf("unknown status: expected 400, got %d", code)
	}
	code, rec := run(`{"status":"CONFIRMADA"}`, doctorID, sandbox.TipoMedico)
	if code != http.StatusOK {
		t.Fatalf("doctor confirming: expected 200, got %d", code)
	}
	if got := decode[appointmentResponse](t, rec); got.ID != appt.ID || got.Status != sandbox.StatusConfirmada {
		t.Errorf("unexpected appointment %+v", got)
	}
	if code, _ := run(`{"status":"CANCELADA"}`, patientID, sandbox.TipoPaciente); code != http.StatusOK {
		t.Fatalf("patient cancelling: expected 200, got %d", code)
	}
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

func TestHealthHandler(t *testing.T) {
	f := newFixture(t)
	h := NewHealthHandler(f.dir)

	c, rec := f.request(http.MethodGet, "/health/ready", "", 0, "")
	if code := f.statusOf(t, h.Readiness, c, rec); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	empty := NewHealthHandler(sandbox.NewDirectory(bcrypt.MinCost))
	c, rec = f.request(http.MethodGet, "/health/ready", "", 0, "")
	if code := f.statusOf(t, empty.Readiness, c, rec); code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for an empty directory, got %d", code)
	}
}
