package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/medagenda/medapp/internal/core/domain"
	"github.com/medagenda/medapp/internal/core/ports"
	"github.com/medagenda/medapp/internal/pkg/metrics"
)

// Storage keys for the persisted credential pair. Both are present or both
// are absent; anything else is treated as corruption.
const (
	StorageKeyUser  = "@MedicalApp:user"
	StorageKeyToken = "@MedicalApp:token"
)

var (
	errPartialSession = errors.New("stored session is missing a key")
	errCorruptSession = errors.New("stored session is corrupt")
)

// SessionService owns the current session and keeps it consistent with
// device storage. Session-mutating calls are serialized through a single
// in-flight slot: SignIn and Register fail fast with domain.ErrSessionBusy
// when the slot is taken, Restore and SignOut wait for it.
type SessionService struct {
	auth  ports.AuthAPI
	store ports.KeyValueStore
	log   zerolog.Logger

	inflight *semaphore.Weighted

	mu        sync.RWMutex
	session   domain.Session
	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func(domain.Session)
}

// NewSessionService returns a service in the booting state.
func NewSessionService(auth ports.AuthAPI, store ports.KeyValueStore, log zerolog.Logger) *SessionService {
	return &SessionService{
		auth:     auth,
		store:    store,
		log:      log,
		inflight: semaphore.NewWeighted(1),
		session:  domain.Session{Loading: true},
	}
}

// Restore loads the persisted session. Every failure is absorbed and
// normalized to "logged out"; Loading is always cleared.
func (s *SessionService) Restore(ctx context.Context) {
	if err := s.inflight.Acquire(ctx, 1); err != nil {
		s.log.Warn().Err(err).Msg("session restore abandoned")
		current := s.Snapshot()
		current.Loading = false
		s.publish(current)
		return
	}
	defer s.inflight.Release(1)

	user, token, err := s.readStored(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding stored session")
		metrics.SessionEventsTotal.WithLabelValues("restore_cleared").Inc()
		s.clearStorage(ctx)
		s.publish(domain.Session{})
		return
	}
	if user == nil {
		s.publish(domain.Session{})
		return
	}

	s.publish(domain.Session{User: user, Token: token})
	s.log.Debug().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
	metrics.SessionEventsTotal.WithLabelValues("restore").Inc()
}

// SignIn authenticates and persists the new session. On failure the previous
// session, in memory and in storage, is left untouched.
func (s *SessionService) SignIn(ctx context.Context, creds domain.Credentials) error {
	if err := validateForm(creds); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if !s.inflight.TryAcquire(1) {
		return domain.ErrSessionBusy
	}
	defer s.inflight.Release(1)

	return s.signIn(ctx, creds)
}

// Register creates a patient account and signs into it with the same
// credentials.
func (s *SessionService) Register(ctx context.Context, data domain.RegisterData) error {
	if err := validateForm(data); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if !s.inflight.TryAcquire(1) {
		return domain.ErrSessionBusy
	}
	defer s.inflight.Release(1)

	created, err := s.auth.Register(ctx, data)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("account created")

	return s.signIn(ctx, data.Credentials())
}

// SignOut ends the session. Backend and storage failures are logged only;
// the local session is always cleared, even when ctx has already ended.
// Only the backend call observes ctx.
func (s *SessionService) SignOut(ctx context.Context) error {
	local := context.WithoutCancel(ctx)
	// Acquire only fails on a done context; local never is.
	_ = s.inflight.Acquire(local, 1)
	defer s.inflight.Release(1)

	current := s.Snapshot()
	if current.Token != "" {
		if err := s.auth.Logout(ctx, current.Token); err != nil {
			s.log.Warn().Err(err).Msg("backend sign-out failed, clearing local session anyway")
		}
	}

	s.clearStorage(local)
	s.publish(domain.Session{})

	if current.User != nil {
		s.log.Info().Str("user_id", current.User.ID).Msg("signed out")
		metrics.SessionEventsTotal.WithLabelValues("sign_out").Inc()
	}
	return nil
}

// Snapshot returns a copy of the current session.
func (s *SessionService) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// Token returns the bearer token of the signed-in user.
func (s *SessionService) Token() (string, error) {
	current := s.Snapshot()
	if !current.Authenticated() {
		return "", domain.ErrNotAuthenticated
	}
	return current.Token, nil
}

// Subscribe registers fn to be called with every published session, in
// registration order, on the goroutine that changed it.
func (s *SessionService) Subscribe(fn func(domain.Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *SessionService) signIn(ctx context.Context, creds domain.Credentials) error {
	token, user, err := s.auth.Login(ctx, creds)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if token == "" || user == nil || user.ID == "" {
		return fmt.Errorf("sign in: %w: empty login response", domain.ErrInvalidCredentials)
	}

	if err := s.persist(ctx, token, user); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	s.publish(domain.Session{User: user, Token: token})
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("signed in")
	metrics.SessionEventsTotal.WithLabelValues("sign_in").Inc()
	return nil
}

func (s *SessionService) publish(next domain.Session) {
	s.mu.Lock()
	s.session = next.Clone()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(next.Clone())
	}
}

func (s *SessionService) readStored(ctx context.Context) (*domain.User, string, error) {
	token, hasToken, err := s.store.Get(ctx, StorageKeyToken)
	if err != nil {
		return nil, "", fmt.Errorf("read token: %w", err)
	}
	raw, hasUser, err := s.store.Get(ctx, StorageKeyUser)
	if err != nil {
		return nil, "", fmt.Errorf("read user: %w", err)
	}

	switch {
	case !hasToken && !hasUser:
		return nil, "", nil
	case !hasToken || !hasUser:
		return nil, "", errPartialSession
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, "", fmt.Errorf("%w: %v", errCorruptSession, err)
	}
	if user.ID == "" || token == "" {
		return nil, "", errCorruptSession
	}
	return &user, token, nil
}

// storedPair is the raw content of both storage keys.
type storedPair struct {
	user, token       string
	hasUser, hasToken bool
}

func (s *SessionService) persist(ctx context.Context, token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	var prev storedPair
	if prev.token, prev.hasToken, err = s.store.Get(ctx, StorageKeyToken); err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if prev.user, prev.hasUser, err = s.store.Get(ctx, StorageKeyUser); err != nil {
		return fmt.Errorf("read user: %w", err)
	}

	if err := s.store.Set(ctx, StorageKeyUser, string(raw)); err != nil {
		s.rollback(ctx, prev)
		return fmt.Errorf("persist user: %w", err)
	}
	if err := s.store.Set(ctx, StorageKeyToken, token); err != nil {
		s.rollback(ctx, prev)
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

func (s *SessionService) rollback(ctx context.Context, prev storedPair) {
	restore := func(key, value string, present bool) {
		var err error
		if present {
			err = s.store.Set(ctx, key, value)
		} else {
			err = s.store.Delete(ctx, key)
		}
		if err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to roll back stored session")
		}
	}
	restore(StorageKeyUser, prev.user, prev.hasUser)
	restore(StorageKeyToken, prev.token, prev.hasToken)
}

func (s *SessionService) clearStorage(ctx context.Context) {
	for _, key := range []string{StorageKeyUser, StorageKeyToken} {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to delete stored session key")
		}
	}
}
