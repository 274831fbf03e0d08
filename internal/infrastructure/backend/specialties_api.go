package backend

import (
	"context"
	"fmt"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/infrastructure/apiclient"
)

type SpecialtiesAPI struct {
	client *apiclient.Client
}

func NewSpecialtiesAPI(client *apiclient.Client) *SpecialtiesAPI {
	return &SpecialtiesAPI{client: client}
}

func (s *SpecialtiesAPI) List(ctx context.Context, token string) ([]domain.Specialty, error) {
	var dtos []specialtyDTO
	if err := s.client.WithToken(token).Get(ctx, apiclient.PathSpecialties, &dtos); err != nil {
		return nil, fmt.Errorf("specialties: list: %w", err)
	}
	out := make([]domain.Specialty, len(dtos))
	for i, d := range dtos {
		out[i] = mapSpecialty(d)
	}
	return out, nil
}

// Directory joins doctor and specialty listings into ports.DirectoryAPI.
type Directory struct {
	auth        *AuthAPI
	specialties *SpecialtiesAPI
}

func NewDirectory(auth *AuthAPI, specialties *SpecialtiesAPI) *Directory {
	return &Directory{auth: auth, specialties: specialties}
}

func (d *Directory) ListDoctors(ctx context.Context, token, specialty string) ([]domain.User, error) {
	return d.auth.ListDoctors(ctx, token, specialty)
}

func (d *Directory) ListSpecialties(ctx context.Context, token string) ([]domain.Specialty, error) {
	return d.specialties.List(ctx, token)
}
