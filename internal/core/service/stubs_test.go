package service

import (
	"context"
	"errors"
	"sync"

	"github.com/medagenda/medapp/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Auth stub
// ---------------------------------------------------------------------------

type stubAuthAPI struct {
	loginFn    func(ctx context.Context, creds domain.Credentials) (string, *domain.User, error)
	registerFn func(ctx context.Context, data domain.RegisterData) (*domain.User, error)
	logoutErr  error
	loggedOut  []string
}

func (a *stubAuthAPI) Login(ctx context.Context, creds domain.Credentials) (string, *domain.User, error) {
	return a.loginFn(ctx, creds)
}

func (a *stubAuthAPI) Register(ctx context.Context, data domain.RegisterData) (*domain.User, error) {
	return a.registerFn(ctx, data)
}

func (a *stubAuthAPI) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	return nil, errors.New("not used")
}

func (a *stubAuthAPI) Logout(_ context.Context, token string) error {
	a.loggedOut = append(a.loggedOut, token)
	return a.logoutErr
}

func loginAs(token string, user domain.User) func(context.Context, domain.Credentials) (string, *domain.User, error) {
	return func(context.Context, domain.Credentials) (string, *domain.User, error) {
		u := user
		return token, &u, nil
	}
}

// ---------------------------------------------------------------------------
// Storage stub
// ---------------------------------------------------------------------------

type stubStore struct {
	mu      sync.Mutex
	data    map[string]string
	getErr  map[string]error
	setErr  map[string]error
	delErr  map[string]error
	deletes []string
}

func newStubStore() *stubStore {
	return &stubStore{
		data:   make(map[string]string),
		getErr: make(map[string]error),
		setErr: make(map[string]error),
		delErr: make(map[string]error),
	}
}

func (s *stubStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.getErr[key]; err != nil {
		return "", false, err
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setErr[key]; err != nil {
		return err
	}
	s.data[key] = value
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, key)
	if err := s.delErr[key]; err != nil {
		return err
	}
	delete(s.data, key)
	return nil
}

func (s *stubStore) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// ---------------------------------------------------------------------------
// Session stub for the screen services
// ---------------------------------------------------------------------------

type stubSession struct {
	session domain.Session
}

func (s stubSession) Snapshot() domain.Session { return s.session.Clone() }

func signedInAs(id string, role domain.Role) stubSession {
	return stubSession{session: domain.Session{
		User:  &domain.User{ID: id, Name: "user " + id, Role: role},
		Token: "tok-" + id,
	}}
}
