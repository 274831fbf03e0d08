package ports

import (
	"context"

	"github.com/medagenda/medapp/internal/core/domain"
)

// AdminAPI is the backend's user-management surface. Admin tokens only.
type AdminAPI interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	ChangePassword(ctx context.Context, token, userID, newPassword string) error
}
