package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
)

// DirectoryService backs the doctor and specialty pickers.
type DirectoryService struct {
	api      ports.DirectoryAPI
	sessions ports.SessionReader
	logger   zerolog.Logger
}

func NewDirectoryService(api ports.DirectoryAPI, sessions ports.SessionReader, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{api: api, sessions: sessions, logger: logger}
}

// Specialties lists every specialty.
func (s *DirectoryService) Specialties(ctx context.Context) ([]domain.Specialty, error) {
	session, err := currentSession(s.sessions)
	if err != nil {
		return nil, err
	}

	specialties, err := s.api.ListSpecialties(ctx, session.Token)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load specialties")
		return nil, fmt.Errorf("list specialties: %w", err)
	}
	return specialties, nil
}

// Doctors lists doctor cards, narrowed to specialty when non-empty.
func (s *DirectoryService) Doctors(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	session, err := currentSession(s.sessions)
	if err != nil {
		return nil, err
	}

	users, err := s.api.ListDoctors(ctx, session.Token, specialty)
	if err != nil {
		s.logger.Error().Err(err).Str("specialty", specialty).Msg("failed to load doctors")
		return nil, fmt.Errorf("list doctors: %w", err)
	}

	doctors := make([]domain.Doctor, 0, len(users))
	for _, u := range users {
		doctors = append(doctors, domain.DoctorFromUser(u))
	}
	return doctors, nil
}
