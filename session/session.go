package session

import (
	"sync"

	"github.com/rs/zerolog"
)

// Session is the single source of truth for the auth token. Many requests may
// read the token concurrently; it is written only by explicit login, logout
// and expiry events.
//
// A lost store write only degrades to fewer remembered sessions (the user
// logs in again next run), so store failures are logged and never surfaced to
// the caller.
type Session struct {
	store Store
	log   zerolog.Logger

	mu    sync.RWMutex
	token string

	// OnExpired is the externally-owned "reset to the login route" action.
	// It runs at most once per held token, however many concurrent 401s
	// arrive. Optional.
	OnExpired func()
}

// New creates a Session backed by the given store.
func New(store Store, log zerolog.Logger) *Session {
	return &Session{store: store, log: log}
}

// Load initializes the in-memory token from the durable store. An empty
// result means unauthenticated.
func (s *Session) Load() string {
	tok, err := s.store.Get()
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot load stored credential, starting unauthenticated")
		return ""
	}
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	return tok
}

// Token returns the current token and whether one is held.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken stores a new token (login) or clears it (empty string). The store
// write is best-effort.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	var err error
	if token == "" {
		err = s.store.Remove()
	} else {
		err = s.store.Set(token)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot persist credential change")
	}
}

// Logout clears the token.
func (s *Session) Logout() { s.SetToken("") }

// Expire handles an observed 401: it clears the token and fires OnExpired.
// Concurrent requests can all see the same stale token rejected; only the
// first caller to clear it triggers the hook, the rest return immediately and
// their own requests fail independently.
func (s *Session) Expire() {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if !had {
		return
	}
	if err := s.store.Remove(); err != nil {
		s.log.Warn().Err(err).Msg("cannot remove expired credential")
	}
	s.log.Info().Msg("session expired, returning to login")
	if s.OnExpired != nil {
		s.OnExpired()
	}
}
