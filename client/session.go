package client

import (
	"errors"
	"sync"
)

var errMalformedIdentity = errors.New("malformed identity payload")

// Session is the client's current belief about who is logged in. It is
// never persisted locally; identity is re-derived from the server through
// the cookie-backed session on every load.
type Session struct {
	UserID          string
	Email           string
	FullName        string
	Role            string
	IsAuthenticated bool
	IsLoading       bool
}

// RoleAdmin is the back office role on identity payloads.
const RoleAdmin = "ADMIN"

// identity is the wire shape of the identity probe and login results.
type identity struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// AuthOutcome is the value-level result of a mutating auth operation.
// Business failures land here; transport failures come back as the error.
type AuthOutcome struct {
	Success bool
	Message string
}

// SessionStore is the single source of truth for the current identity.
// It is single-writer: only its own operations mutate the session.
type SessionStore struct {
	api *Client

	mu        sync.RWMutex
	session   Session
	listeners []func(Session)
}

// NewSessionStore creates a store in the loading state. Route guards must
// not make redirect decisions until Initialize resolves.
func NewSessionStore(api *Client) *SessionStore {
	return &SessionStore{
		api:     api,
		session: Session{IsLoading: true},
	}
}

// Current returns a snapshot of the session.
func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Subscribe registers a listener invoked after every session change.
func (s *SessionStore) Subscribe(fn func(Session)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *SessionStore) set(session Session) {
	s.mu.Lock()
	s.session = session
	listeners := make([]func(Session), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}

// Initialize probes the server for the current identity. Any failure,
// transport or business, degrades to "not authenticated" — it never
// propagates. Loading ends only after the probe resolves.
func (s *SessionStore) Initialize() {
	s.probe()
}

// Refresh re-runs the identity probe to pick up server-side profile
// changes. Failures clear the session silently.
func (s *SessionStore) Refresh() {
	s.probe()
}

func (s *SessionStore) probe() {
	res := s.api.Get("/api/auth/me")
	if res.Kind != Success {
		s.set(Session{})
		return
	}
	var id identity
	if err := res.Decode(&id); err != nil || id.UserID == "" {
		s.set(Session{})
		return
	}
	s.set(Session{
		UserID:          id.UserID,
		Email:           id.Email,
		FullName:        id.FullName,
		Role:            id.Role,
		IsAuthenticated: true,
	})
}

// Login exchanges credentials for a session. Business failures are returned
// as a value; transport failures as the error.
func (s *SessionStore) Login(email, password string) (AuthOutcome, error) {
	return s.authenticate("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Register creates an account and signs it in. Same contract as Login.
func (s *SessionStore) Register(fullName, email, password string) (AuthOutcome, error) {
	return s.authenticate("/api/auth/register", map[string]string{
		"fullName": fullName,
		"email":    email,
		"password": password,
	})
}

// SocialLogin exchanges a third-party token for a session. Same contract
// as Login.
func (s *SessionStore) SocialLogin(provider, token string) (AuthOutcome, error) {
	return s.authenticate("/api/auth/social-login", map[string]string{
		"provider": provider,
		"token":    token,
	})
}

func (s *SessionStore) authenticate(path string, body any) (AuthOutcome, error) {
	res := s.api.Post(path, body)
	switch res.Kind {
	case TransportFailure:
		return AuthOutcome{}, res.Err
	case BusinessFailure:
		return AuthOutcome{Success: false, Message: res.Message}, nil
	}

	var id identity
	if err := res.Decode(&id); err != nil || id.UserID == "" {
		return AuthOutcome{}, errMalformedIdentity
	}
	s.set(Session{
		UserID:          id.UserID,
		Email:           id.Email,
		FullName:        id.FullName,
		Role:            id.Role,
		IsAuthenticated: true,
	})
	return AuthOutcome{Success: true}, nil
}

// Logout invalidates the server session best-effort and always clears the
// local one.
func (s *SessionStore) Logout() {
	s.api.Post("/api/auth/logout", nil)
	s.set(Session{})
}

// LogoutAllDevices invalidates every session the account has, then clears
// the local one.
func (s *SessionStore) LogoutAllDevices() {
	s.api.Post("/api/auth/logout-all", nil)
	s.set(Session{})
}
