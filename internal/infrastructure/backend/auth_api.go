// Package backend adapts the booking backend's REST surface to the core ports.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/infrastructure/apiclient"
)

// AuthAPI implements ports.AuthAPI and the doctor listing of ports.DirectoryAPI.
type AuthAPI struct {
	client *apiclient.Client
	log    zerolog.Logger
}

func NewAuthAPI(client *apiclient.Client, log zerolog.Logger) *AuthAPI {
	return &AuthAPI{client: client, log: log}
}

// Login exchanges credentials for a token, then loads the account with it.
func (a *AuthAPI) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	var resp loginResponse
	err := a.client.Do(ctx, "", http.MethodPost, apiclient.PathLogin,
		loginRequest{Email: creds.Email, Senha: creds.Password}, &resp)
	if err != nil {
		return "", nil, loginError(err)
	}
	if resp.Token == "" {
		return "", nil, fmt.Errorf("auth: login: %w: empty token", domain.ErrInvalidCredentials)
	}

	user, err := a.CurrentUser(ctx, resp.Token)
	if err != nil {
		return "", nil, loginError(err)
	}
	return resp.Token, user, nil
}

func loginError(err error) error {
	if apiclient.HasStatus(err, http.StatusUnauthorized, http.StatusForbidden) {
		return fmt.Errorf("auth: login: %w: %v", domain.ErrInvalidCredentials, err)
	}
	return fmt.Errorf("auth: login: %w", err)
}

// Register creates a patient account. It does not sign in.
func (a *AuthAPI) Register(ctx context.Context, data domain.RegisterData) (*domain.User, error) {
	var created userDTO
	err := a.client.Do(ctx, "", http.MethodPost, apiclient.PathRegister, registerRequest{
		Nome:  data.Name,
		Email: data.Email,
		Senha: data.Password,
		Tipo:  tipoPaciente,
	}, &created)
	if err != nil {
		if apiclient.HasStatus(err, http.StatusConflict) {
			return nil, fmt.Errorf("auth: register: %w: %v", domain.ErrUserExists, err)
		}
		return nil, fmt.Errorf("auth: register: %w", err)
	}

	// Some deployments answer 201 with no body.
	if created.ID == 0 {
		return &domain.User{Name: data.Name, Email: data.Email, Role: domain.RolePatient}, nil
	}
	user, err := MapUser(created)
	if err != nil {
		return nil, fmt.Errorf("auth: register: %w", err)
	}
	a.log.Debug().Str("user_id", user.ID).Msg("backend account created")
	return user, nil
}

// CurrentUser returns the account token belongs to.
func (a *AuthAPI) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var dto userDTO
	if err := a.client.WithToken(token).Get(ctx, apiclient.PathCurrentUser, &dto); err != nil {
		return nil, fmt.Errorf("auth: current user: %w", err)
	}
	user, err := MapUser(dto)
	if err != nil {
		return nil, fmt.Errorf("auth: current user: %w", err)
	}
	return user, nil
}

// Logout asks the backend to revoke token.
func (a *AuthAPI) Logout(ctx context.Context, token string) error {
	if err := a.client.WithToken(token).Post(ctx, apiclient.PathSignOut, nil, nil); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	return nil
}

// ListDoctors returns doctor accounts, narrowed to specialty when non-empty.
func (a *AuthAPI) ListDoctors(ctx context.Context, token, specialty string) ([]domain.User, error) {
	path := apiclient.PathDoctors
	if specialty != "" {
		path += "?" + url.Values{"especialidade": {specialty}}.Encode()
	}

	var dtos []userDTO
	if err := a.client.WithToken(token).Get(ctx, path, &dtos); err != nil {
		return nil, fmt.Errorf("doctors: list: %w", err)
	}
	users, err := mapUsers(dtos)
	if err != nil {
		return nil, fmt.Errorf("doctors: list: %w", err)
	}
	return users, nil
}
