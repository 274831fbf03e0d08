package service

import (
	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
)

// currentSession returns the signed-in session or domain.ErrNotAuthenticated.
func currentSession(sessions ports.SessionReader) (domain.Session, error) {
	s := sessions.Snapshot()
	if !s.Authenticated() {
		return domain.Session{}, domain.ErrNotAuthenticated
	}
	return s, nil
}
