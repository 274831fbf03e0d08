package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
)

// AdminService backs the user-management tab of the admin dashboard.
type AdminService struct {
	api      ports.AdminAPI
	sessions ports.SessionReader
	logger   zerolog.Logger
}

func NewAdminService(api ports.AdminAPI, sessions ports.SessionReader, logger zerolog.Logger) *AdminService {
	return &AdminService{api: api, sessions: sessions, logger: logger}
}

// Users lists every account.
func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	session, err := s.adminSession()
	if err != nil {
		return nil, err
	}

	users, err := s.api.ListUsers(ctx, session.Token)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load users")
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ChangePassword resets another user's password.
func (s *AdminService) ChangePassword(ctx context.Context, change ports.PasswordChange) error {
	session, err := s.adminSession()
	if err != nil {
		return err
	}
	if err := validateForm(change); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if err := s.api.ChangePassword(ctx, session.Token, change.UserID, change.NewPassword); err != nil {
		s.logger.Error().Err(err).Str("user_id", change.UserID).Msg("failed to change password")
		return fmt.Errorf("change password: %w", err)
	}

	s.logger.Info().Str("user_id", change.UserID).Str("admin_id", session.User.ID).Msg("password changed")
	return nil
}

func (s *AdminService) adminSession() (domain.Session, error) {
	session, err := currentSession(s.sessions)
	if err != nil {
		return domain.Session{}, err
	}
	if session.User.Role.Kind() != domain.RoleKindAdmin {
		return domain.Session{}, domain.ErrForbidden
	}
	return session, nil
}
