package ports

import (
	"context"

	"github.com/medagenda/medapp/internal/core/domain"
)

// SessionService owns the current session.
type SessionService interface {
	Restore(ctx context.Context)
	SignIn(ctx context.Context, creds domain.Credentials) error
	Register(ctx context.Context, data domain.RegisterData) error
	SignOut(ctx context.Context) error
	Snapshot() domain.Session
	Subscribe(fn func(domain.Session)) (unsubscribe func())
}

// SessionReader is the read side other services depend on.
type SessionReader interface {
	Snapshot() domain.Session
}
