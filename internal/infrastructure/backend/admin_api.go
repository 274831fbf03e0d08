package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/infrastructure/apiclient"
)

// AdminAPI implements ports.AdminAPI.
type AdminAPI struct {
	client *apiclient.Client
	log    zerolog.Logger
}

func NewAdminAPI(client *apiclient.Client, log zerolog.Logger) *AdminAPI {
	return &AdminAPI{client: client, log: log}
}

func (a *AdminAPI) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var dtos []userDTO
	if err := a.client.WithToken(token).Get(ctx, apiclient.PathUsers, &dtos); err != nil {
		return nil, fmt.Errorf("admin: list users: %w", err)
	}
	users, err := mapUsers(dtos)
	if err != nil {
		return nil, fmt.Errorf("admin: list users: %w", err)
	}
	return users, nil
}

// ChangePassword sets userID's password to newPassword.
func (a *AdminAPI) ChangePassword(ctx context.Context, token, userID, newPassword string) error {
	path := fmt.Sprintf("%s/%s/senha", apiclient.PathUsers, url.PathEscape(userID))
	if err := a.client.WithToken(token).Put(ctx, path, changePasswordRequest{NovaSenha: newPassword}, nil); err != nil {
		return fmt.Errorf("admin: change password: %w", err)
	}
	a.log.Debug().Str("user_id", userID).Msg("backend password changed")
	return nil
}
