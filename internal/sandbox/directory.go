// Package sandbox is the in-memory state behind the development backend:
// accounts, specialties and appointments, plus token issuance.
package sandbox

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/medagenda/medapp/internal/core/domain"
)

// Account types ("tipo") as the backend spells them.
const (
	TipoAdmin    = "ADMIN"
	TipoMedico   = "MEDICO"
	TipoPaciente = "PACIENTE"
)

// Appointment statuses as the backend spells them.
const (
	StatusAgendada   = "AGENDADA"
	StatusConfirmada = "CONFIRMADA"
	StatusCancelada  = "CANCELADA"
	StatusRealizada  = "REALIZADA"
)

var statusTransitions = map[string][]string{
	StatusAgendada:   {StatusConfirmada, StatusCancelada},
	StatusConfirmada: {StatusRealizada, StatusCancelada},
}

type Account struct {
	ID           int64
	Name         string
	Email        string
	Tipo         string
	Specialty    string
	passwordHash []byte
}

type NewAccount struct {
	Name      string
	Email     string
	Password  string
	Tipo      string
	Specialty string
}

type Specialty struct {
	ID   int64
	Name string
}

type Appointment struct {
	ID        int64
	DataHora  string
	Specialty string
	PatientID int64
	DoctorID  int64
	Notes     string
	Status    string
}

// AppointmentQuery narrows Appointments. Zero fields do not filter.
type AppointmentQuery struct {
	PatientID int64
	DoctorID  int64
}

// Directory is safe for concurrent use.
type Directory struct {
	mu           sync.RWMutex
	accounts     map[int64]*Account
	byEmail      map[string]int64
	specialties  []Specialty
	appointments map[int64]*Appointment
	nextAccount  int64
	nextAppt     int64
	bcryptCost   int
}

// NewDirectory returns an empty directory. cost <= 0 means bcrypt.DefaultCost.
func NewDirectory(cost int) *Directory {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Directory{
		accounts:     make(map[int64]*Account),
		byEmail:      make(map[string]int64),
		appointments: make(map[int64]*Appointment),
		bcryptCost:   cost,
	}
}

// CreateAccount stores a new account. Emails are unique, case-insensitively.
func (d *Directory) CreateAccount(in NewAccount) (Account, error) {
	switch in.Tipo {
	case TipoAdmin, TipoMedico, TipoPaciente:
	default:
		return Account{}, fmt.Errorf("%w: unknown tipo %q", domain.ErrInvalidInput, in.Tipo)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), d.bcryptCost)
	if err != nil {
		return Account{}, fmt.Errorf("hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	email := normalizeEmail(in.Email)
	if _, taken := d.byEmail[email]; taken {
		return Account{}, domain.ErrUserExists
	}

	d.nextAccount++
	acc := &Account{
		ID:           d.nextAccount,
		Name:         in.Name,
		Email:        strings.TrimSpace(in.Email),
		Tipo:         in.Tipo,
		passwordHash: hash,
	}
	if in.Tipo == TipoMedico {
		acc.Specialty = in.Specialty
	}
	d.accounts[acc.ID] = acc
	d.byEmail[email] = acc.ID
	return *acc, nil
}

// Authenticate returns the account for email when password matches.
func (d *Directory) Authenticate(email, password string) (Account, error) {
	d.mu.RLock()
	id, ok := d.byEmail[normalizeEmail(email)]
	var acc Account
	if ok {
		acc = *d.accounts[id]
	}
	d.mu.RUnlock()

	if !ok {
		return Account{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return Account{}, domain.ErrInvalidCredentials
	}
	return acc, nil
}

func (d *Directory) Account(id int64) (Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	acc, ok := d.accounts[id]
	if !ok {
		return Account{}, domain.ErrUserNotFound
	}
	return *acc, nil
}

// Accounts lists every account by id.
func (d *Directory) Accounts() []Account {
	return d.filterAccounts(func(*Account) bool { return true })
}

// Doctors lists MEDICO accounts, narrowed to specialty (case-insensitive)
// when non-empty.
func (d *Directory) Doctors(specialty string) []Account {
	return d.filterAccounts(func(a *Account) bool {
		return a.Tipo == TipoMedico && (specialty == "" || strings.EqualFold(a.Specialty, specialty))
	})
}

func (d *Directory) filterAccounts(keep func(*Account) bool) []Account {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		if keep(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (d *Directory) SetPassword(id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	acc, ok := d.accounts[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	acc.passwordHash = hash
	return nil
}

func (d *Directory) AddSpecialty(name string) Specialty {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := Specialty{ID: int64(len(d.specialties) + 1), Name: name}
	d.specialties = append(d.specialties, s)
	return s
}

func (d *Directory) Specialties() []Specialty {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Specialty, len(d.specialties))
	copy(out, d.specialties)
	return out
}

// CreateAppointment books in with status AGENDADA. The patient must be a
// PACIENTE, the doctor a MEDICO.
func (d *Directory) CreateAppointment(in Appointment) (Appointment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.accounts[in.PatientID]; !ok || p.Tipo != TipoPaciente {
		return Appointment{}, fmt.Errorf("%w: patient %d", domain.ErrUserNotFound, in.PatientID)
	}
	if doc, ok := d.accounts[in.DoctorID]; !ok || doc.Tipo != TipoMedico {
		return Appointment{}, fmt.Errorf("%w: doctor %d", domain.ErrUserNotFound, in.DoctorID)
	}
	if !d.hasSpecialtyLocked(in.Specialty) {
		return Appointment{}, fmt.Errorf("%w: %q", domain.ErrSpecialtyNotFound, in.Specialty)
	}

	d.nextAppt++
	appt := in
	appt.ID = d.nextAppt
	appt.Status = StatusAgendada
	d.appointments[appt.ID] = &appt
	return appt, nil
}

func (d *Directory) hasSpecialtyLocked(name string) bool {
	for _, s := range d.specialties {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func (d *Directory) Appointment(id int64) (Appointment, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.appointments[id]
	if !ok {
		return Appointment{}, domain.ErrAppointmentNotFound
	}
	return *a, nil
}

// Appointments lists matching appointments by id.
func (d *Directory) Appointments(q AppointmentQuery) []Appointment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Appointment, 0, len(d.appointments))
	for _, a := range d.appointments {
		if q.PatientID != 0 && a.PatientID != q.PatientID {
			continue
		}
		if q.DoctorID != 0 && a.DoctorID != q.DoctorID {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetAppointmentStatus applies one lifecycle transition.
func (d *Directory) SetAppointmentStatus(id int64, status string) (Appointment, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.appointments[id]
	if !ok {
		return Appointment{}, domain.ErrAppointmentNotFound
	}
	if !canTransition(a.Status, status) {
		return Appointment{}, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, a.Status, status)
	}
	a.Status = status
	return *a, nil
}

func canTransition(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
