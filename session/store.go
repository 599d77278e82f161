package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	interrors "github.com/jrsteele09/go-commerce-client/internal/errors"
)

// Provider is the capability the dispatcher and auth flows depend on.
// Callers hold this interface rather than a concrete store so tests can
// substitute doubles and no package grows a hidden dependency on a
// global session.
type Provider interface {
	// Token returns the current bearer token, or "" when no session
	// exists. It never blocks on I/O and never fails.
	Token() string

	// RefreshToken returns the current refresh token, or "" when no
	// session exists.
	RefreshToken() string

	// UserProfile returns the cached profile blob from login, or nil.
	UserProfile() json.RawMessage

	// SetSession replaces all session fields at once. Readers never
	// observe a half-written session.
	SetSession(token, refreshToken string, profile json.RawMessage) error

	// ClearSession removes all session fields. Idempotent.
	ClearSession() error
}

var _ Provider = (*Store)(nil)

// Store is the process-wide session holder. Reads are served from an
// in-memory copy guarded by a RWMutex; writes update the copy and the
// backing Repo inside the same critical section, so concurrent readers
// see either the old session or the new one, never a mix.
//
// A failing Repo degrades the store to "no session": construction and
// writes log the storage fault and carry on with memory-only state
// rather than surfacing a crash to the host application.
type Store struct {
	repo    Repo
	logger  zerolog.Logger
	nowTime func() time.Time

	lock    sync.RWMutex
	current Data
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithLogger routes the store's diagnostics through the given logger.
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// NewStore creates a session store backed by repo, hydrating the
// in-memory state from whatever the repo already holds. An unreadable
// or absent record hydrates to an empty session.
func NewStore(repo Repo, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[NewStore] repo is required")
	}

	store := &Store{
		repo:    repo,
		logger:  zerolog.Nop(),
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(store)
	}

	data, err := repo.Load()
	switch {
	case err == nil && data != nil:
		store.current = *data
	case interrors.Is(err, interrors.ErrNoSession):
		// Nothing persisted, start empty
	case err != nil:
		store.logger.Warn().Err(err).Msg("session storage unreadable, starting with empty session")
	}

	return store, nil
}

// Token returns the current bearer token, or "" when no session exists.
func (s *Store) Token() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.current.Token
}

// RefreshToken returns the current refresh token, or "" when no session exists.
func (s *Store) RefreshToken() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.current.RefreshToken
}

// UserProfile returns the profile blob cached at login, or nil.
func (s *Store) UserProfile() json.RawMessage {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.current.UserProfile == nil {
		return nil
	}
	profile := make(json.RawMessage, len(s.current.UserProfile))
	copy(profile, s.current.UserProfile)
	return profile
}

// SetSession replaces token, refresh token, and profile in one step.
// The in-memory state always updates; a storage write failure is
// logged and reported but leaves the new session active in memory, so
// the client keeps working for the lifetime of the process.
func (s *Store) SetSession(token, refreshToken string, profile json.RawMessage) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.current = Data{
		Token:        token,
		RefreshToken: refreshToken,
		UserProfile:  profile,
		CreatedAt:    s.nowTime(),
	}

	if err := s.repo.Save(&s.current); err != nil {
		s.logger.Warn().Err(err).Msg("session not persisted, continuing with in-memory session")
		return interrors.Wrapf(interrors.ErrSessionStorage, "save session: %v", err)
	}
	return nil
}

// ClearSession removes all session state. Clearing an already-empty
// session is a no-op with the same outcome.
func (s *Store) ClearSession() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.current = Data{}

	if err := s.repo.Delete(); err != nil {
		s.logger.Warn().Err(err).Msg("persisted session not removed")
		return interrors.Wrapf(interrors.ErrSessionStorage, "delete session: %v", err)
	}
	return nil
}
