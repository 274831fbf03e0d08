package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
)

type stubAdminAPI struct {
	users   []domain.User
	changed map[string]string
	err     error
}

func (a *stubAdminAPI) ListUsers(context.Context, string) ([]domain.User, error) {
	return a.users, a.err
}

func (a *stubAdminAPI) ChangePassword(_ context.Context, _ string, userID, newPassword string) error {
	if a.err != nil {
		return a.err
	}
	if a.changed == nil {
		a.changed = make(map[string]string)
	}
	a.changed[userID] = newPassword
	return nil
}

func TestAdminService_Users(t *testing.T) {
	api := &stubAdminAPI{users: []domain.User{alice, bruno}}
	svc := NewAdminService(api, signedInAs("1", domain.RoleAdmin), zerolog.Nop())

	users, err := svc.Users(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	svc := NewAdminService(&stubAdminAPI{}, signedInAs("2", domain.RoleDoctor), zerolog.Nop())

	if _, err := svc.Users(context.Background()); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	err := svc.ChangePassword(context.Background(), ports.PasswordChange{UserID: "3", NewPassword: "secret1"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAdminService_ChangePassword(t *testing.T) {
	api := &stubAdminAPI{}
	svc := NewAdminService(api, signedInAs("1", domain.RoleAdmin), zerolog.Nop())

	if err := svc.ChangePassword(context.Background(), ports.PasswordChange{UserID: "3", NewPassword: "short"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), ports.PasswordChange{UserID: "3", NewPassword: "longer-secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.changed["3"] != "longer-secret" {
		t.Fatalf("password not forwarded: %v", api.changed)
	}
}
