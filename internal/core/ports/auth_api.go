package ports

import (
	"context"

	"github.com/medagenda/medapp/internal/core/domain"
)

// AuthAPI is the backend's authentication surface.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token and the account it belongs to.
	Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error)
	// Register creates a patient account. It does not sign in.
	Register(ctx context.Context, data domain.RegisterData) (*domain.User, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
}

// DirectoryAPI lists the people and specialties patients book against.
type DirectoryAPI interface {
	// ListDoctors returns doctors, narrowed to specialty when non-empty.
	ListDoctors(ctx context.Context, token, specialty string) ([]domain.User, error)
	ListSpecialties(ctx context.Context, token string) ([]domain.Specialty, error)
}
