// Package session maintains the single source of truth for the current
// authenticated identity: who is logged in, with what token, and whether
// they hold admin privilege. The store keeps its state consistent with a
// persisted credentials file so a new process picks up an existing login.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/model-pkgs/registry/internal/core"
)

// API is the slice of the registry surface the store needs. Satisfied by
// *registry.Registry.
type API interface {
	Authenticate(ctx context.Context, username, password string, isAdmin bool) (string, error)
	CurrentUser(ctx context.Context) (core.User, error)
}

// Store holds the current session. It implements client.TokenSource, so a
// client wired to it attaches the bearer token of whoever is logged in at
// request time.
//
// The token being present is what "authenticated" means; username and
// admin flag are best-effort cached copies of server-reported identity
// and may be stale until a Hydrate probe completes.
type Store struct {
	mu       sync.RWMutex
	token    string
	username string
	isAdmin  bool
	loading  bool

	api     API
	persist Persister
}

// NewStore creates an empty store. The session is marked loading until
// Hydrate runs.
func NewStore(api API, persist Persister) *Store {
	if persist == nil {
		persist = &MemStore{}
	}
	return &Store{api: api, persist: persist, loading: true}
}

// Hydrate restores a persisted session. If a token exists the store is
// optimistically marked authenticated, then identity is resolved against
// the backend. A failed probe (network error, expired token) falls back
// to the last persisted identity rather than forcing logout: a transient
// backend outage must not lock out a user who already holds a token.
// The store is not loading afterwards regardless of outcome.
func (s *Store) Hydrate(ctx context.Context) {
	creds, ok, err := s.persist.Load()
	if err != nil || !ok {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.token = creds.Token
	s.username = creds.Username
	s.isAdmin = creds.IsAdmin
	s.mu.Unlock()

	user, err := s.api.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.username = user.Name
		s.isAdmin = user.IsAdmin
		_ = s.persist.Save(Credentials{Token: creds.Token, Username: user.Name, IsAdmin: user.IsAdmin})
	}
	s.loading = false
}

// Login authenticates and stores the returned token together with the
// supplied identity. The identity is not server-confirmed at this point;
// a later Hydrate overwrites it with what the backend reports.
func (s *Store) Login(ctx context.Context, username, password string, isAdmin bool) error {
	token, err := s.api.Authenticate(ctx, username, password, isAdmin)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.isAdmin = isAdmin
	s.loading = false
	s.mu.Unlock()

	if err := s.persist.Save(Credentials{Token: token, Username: username, IsAdmin: isAdmin}); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	return nil
}

// Logout clears the session from memory and persisted storage. Safe to
// call when already logged out.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.isAdmin = false
	s.loading = false
	s.mu.Unlock()

	return s.persist.Clear()
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Username returns the cached identity name, empty when unknown.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// IsAdmin reports the cached admin flag.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}

// Loading reports whether the initial Hydrate is still outstanding.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}
