// Package service contains the client-side session core and the page flows built on it.
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/and161185/edu-web/internal/errs"
	"github.com/and161185/edu-web/internal/model"
	"github.com/and161185/edu-web/internal/store"
)

// AuthAPI is the auth transport used by SessionManager.
type AuthAPI interface {
	// Login exchanges credentials for a session payload.
	Login(ctx context.Context, cred model.Credentials) (model.LoginResponse, error)
	// Refresh exchanges a refresh token for a new session payload.
	Refresh(ctx context.Context, refreshToken string) (model.LoginResponse, error)
	// Logout notifies the backend; it never fails.
	Logout(ctx context.Context, accessToken, refreshToken string)
}

// SessionService defines the session lifecycle operations and read-only views.
type SessionService interface {
	// Login authenticates and returns the raw backend payload.
	Login(ctx context.Context, cred model.Credentials) (model.LoginResponse, error)
	// Logout clears the session; it always succeeds locally.
	Logout(ctx context.Context)
	// Refresh renews the tokens with the held refresh token.
	Refresh(ctx context.Context) (model.LoginResponse, error)

	Snapshot() model.Session
	Status() model.Status
	IsAuthenticated() bool
	IsAuthenticating() bool
	User() *model.User
	AccessToken() string
}

var _ SessionService = (*SessionManager)(nil)

// SessionManager owns the in-memory session and its persisted copy.
// No other component mutates either.
//
// The mutex only protects memory; operations are not serialized. Two
// concurrent logins race and the last one to resolve wins.
type SessionManager struct {
	api   AuthAPI
	store store.Store
	log   *zap.Logger

	mu    sync.Mutex
	state model.Session
}

// NewSessionManager restores the persisted session if present, else starts unauthenticated.
func NewSessionManager(api AuthAPI, st store.Store, log *zap.Logger) *SessionManager {
	if st == nil {
		st = store.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &SessionManager{api: api, store: st, log: log}
	m.state = model.Session{Status: model.StatusUnauthenticated}
	if p, ok := st.Load(); ok && p.Complete() {
		m.state = model.Session{
			User:         p.User,
			AccessToken:  p.AccessToken,
			RefreshToken: p.RefreshToken,
			Status:       model.StatusAuthenticated,
		}
	}
	return m
}

// Login authenticates and returns the raw backend payload.
// On failure the status reverts to authenticated if a session was already held, else unauthenticated.
func (m *SessionManager) Login(ctx context.Context, cred model.Credentials) (model.LoginResponse, error) {
	m.mu.Lock()
	m.state.Status = model.StatusAuthenticating
	m.mu.Unlock()

	resp, err := m.api.Login(ctx, cred)
	if err == nil {
		err = m.commit(resp)
	}
	if err != nil {
		m.mu.Lock()
		if m.state.Valid() {
			m.state.Status = model.StatusAuthenticated
		} else {
			m.state.Status = model.StatusUnauthenticated
		}
		m.mu.Unlock()
		return model.LoginResponse{}, err
	}
	return resp, nil
}

// Logout best-effort notifies the backend, then always clears local state.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	access, refresh := m.state.AccessToken, m.state.RefreshToken
	m.mu.Unlock()

	if access != "" {
		m.api.Logout(ctx, access, refresh)
	}
	if err := m.store.Clear(); err != nil {
		m.log.Warn("clear persisted session", zap.Error(err))
	}

	m.mu.Lock()
	m.state = model.Session{Status: model.StatusUnauthenticated}
	m.mu.Unlock()
}

// Refresh renews the tokens. Without a refresh token it fails before any network call.
// A transport failure leaves the current session untouched.
func (m *SessionManager) Refresh(ctx context.Context) (model.LoginResponse, error) {
	m.mu.Lock()
	refresh := m.state.RefreshToken
	m.mu.Unlock()

	if refresh == "" {
		return model.LoginResponse{}, errs.ErrNoRefreshToken
	}
	resp, err := m.api.Refresh(ctx, refresh)
	if err != nil {
		return model.LoginResponse{}, err
	}
	if err := m.commit(resp); err != nil {
		return model.LoginResponse{}, err
	}
	return resp, nil
}

// commit persists the session built from resp, then flips the in-memory state.
func (m *SessionManager) commit(resp model.LoginResponse) error {
	user := model.UserFromResponse(resp)
	p := model.PersistedSession{User: &user, AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	if !p.Complete() {
		return errs.ErrIncompleteSession
	}
	if err := m.store.Save(p); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = model.Session{
		User:         p.User,
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		Status:       model.StatusAuthenticated,
	}
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current session.
func (m *SessionManager) Snapshot() model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Status returns the current lifecycle state.
func (m *SessionManager) Status() model.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Status
}

// IsAuthenticated is derived from Status.
func (m *SessionManager) IsAuthenticated() bool { return m.Status() == model.StatusAuthenticated }

// IsAuthenticating is derived from Status.
func (m *SessionManager) IsAuthenticating() bool { return m.Status() == model.StatusAuthenticating }

// User returns a copy of the current identity, or nil.
func (m *SessionManager) User() *model.User { return m.Snapshot().User }

// AccessToken returns the current bearer token, or "".
func (m *SessionManager) AccessToken() string { return m.Snapshot().AccessToken }
