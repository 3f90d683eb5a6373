// Package auth owns the process-wide authentication session: one Session
// exists, every screen reads it, and it changes only through hydrate,
// login/register, logout, and the global 401 wipe.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/waymark-dev/waymark/internal/api"
	"github.com/waymark-dev/waymark/internal/roadmap"
)

// State is the authentication gate. Every screen starts blocked on
// StateUnresolved and renders nothing auth-dependent until hydration
// resolves it, exactly once, to Authenticated or Anonymous.
type State int

const (
	StateUnresolved State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unresolved"
	}
}

// Reason describes why the session state changed.
type Reason int

const (
	ReasonHydrate Reason = iota
	ReasonLogin
	ReasonRegister
	ReasonLogout
	ReasonUnauthorized // backend rejected a request with 401
)

// ErrNoSession is returned when a mutating operation is attempted without
// an authenticated session. No network call is made in that case.
var ErrNoSession = errors.New("no active session: log in first")

// Backend is the slice of the API client the session needs.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (api.AuthResponse, error)
	Register(ctx context.Context, reg api.Registration) (api.AuthResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (roadmap.User, error)
}

// Session is the process-wide authentication state. All views observe the
// same value through State/User or a subscription; none hold private copies.
type Session struct {
	backend Backend
	store   *CredStore

	mu    sync.Mutex
	state State
	user  *roadmap.User
	token string
	subs  []func(State, Reason)
}

// NewSession creates a Session in StateUnresolved backed by the given store.
func NewSession(backend Backend, store *CredStore) *Session {
	return &Session{
		backend: backend,
		store:   store,
		state:   StateUnresolved,
	}
}

// Subscribe registers fn to be called on every state transition. Callbacks
// run synchronously on the mutating goroutine and must not block.
func (s *Session) Subscribe(fn func(State, Reason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State returns the current gate state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the signed-in user, or nil.
func (s *Session) User() *roadmap.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the current bearer credential, or "". Suitable as the API
// client's token source.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// RequireAuth returns ErrNoSession unless the session is authenticated.
func (s *Session) RequireAuth() error {
	if s.State() != StateAuthenticated {
		return ErrNoSession
	}
	return nil
}

// Hydrate resolves the startup gate: it loads the persisted credential and
// revalidates it against the backend. Success ends Authenticated; a missing
// credential or a rejected revalidation ends Anonymous with storage cleared.
// Hydrate is a no-op once the gate has resolved.
func (s *Session) Hydrate(ctx context.Context) State {
	s.mu.Lock()
	if s.state != StateUnresolved {
		state := s.state
		s.mu.Unlock()
		return state
	}
	s.mu.Unlock()

	token, user, err := s.store.Load()
	if err != nil || token == "" {
		return s.transition(StateAnonymous, ReasonHydrate, "", nil)
	}

	// Install the stored credential so the revalidation request carries it.
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	fresh, err := s.backend.Profile(ctx)
	if err != nil {
		_ = s.store.Clear()
		return s.transition(StateAnonymous, ReasonHydrate, "", nil)
	}
	return s.transition(StateAuthenticated, ReasonHydrate, token, &fresh)
}

// Login exchanges credentials for a session and persists it.
func (s *Session) Login(ctx context.Context, username, password string) error {
	resp, err := s.backend.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		return err
	}
	if err := s.store.Save(resp.Token, resp.User); err != nil {
		return err
	}
	s.transition(StateAuthenticated, ReasonLogin, resp.Token, &resp.User)
	return nil
}

// Register creates an account; on success the new user is signed in.
func (s *Session) Register(ctx context.Context, reg api.Registration) error {
	resp, err := s.backend.Register(ctx, reg)
	if err != nil {
		return err
	}
	if err := s.store.Save(resp.Token, resp.User); err != nil {
		return err
	}
	s.transition(StateAuthenticated, ReasonRegister, resp.Token, &resp.User)
	return nil
}

// Logout notifies the backend (best effort) and always clears the local
// session and storage.
func (s *Session) Logout(ctx context.Context) error {
	err := s.backend.Logout(ctx)
	_ = s.store.Clear()
	s.transition(StateAnonymous, ReasonLogout, "", nil)
	return err
}

// Invalidate is the global 401 handler: wipe the credential and force the
// gate to Anonymous, regardless of which screen's request tripped it.
// During hydration it only wipes storage; Hydrate concludes the gate itself.
func (s *Session) Invalidate() {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	_ = s.store.Clear()
	if state != StateAuthenticated {
		return
	}
	s.transition(StateAnonymous, ReasonUnauthorized, "", nil)
}

// transition applies the new state and notifies subscribers outside the lock.
func (s *Session) transition(state State, reason Reason, token string, user *roadmap.User) State {
	s.mu.Lock()
	s.state = state
	s.token = token
	s.user = user
	subs := make([]func(State, Reason), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state, reason)
	}
	return state
}
