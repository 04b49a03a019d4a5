package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/edu-web/internal/model"
	"github.com/and161185/edu-web/internal/service"
	"github.com/and161185/edu-web/internal/store"
)

type flags struct{ authed, authing bool }

func (f flags) IsAuthenticated() bool  { return f.authed }
func (f flags) IsAuthenticating() bool { return f.authing }

func TestEvaluate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    flags
		want Decision
	}{
		{"authenticated renders", flags{authed: true}, Decision{Outcome: Render}},
		{"in flight shows loading", flags{authing: true}, Decision{Outcome: Loading}},
		{"loading wins over authenticated", flags{authed: true, authing: true}, Decision{Outcome: Loading}},
		{"anonymous redirected with origin", flags{}, Decision{Outcome: Redirect, Location: "/login", From: "/profile"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.f, "/profile")
			require.Equal(t, tt.want, got)
			require.Equal(t, got, Evaluate(tt.f, "/profile"), "pure")
		})
	}
}

func TestReturnTo(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/", ReturnTo(""))
	require.Equal(t, "/profile", ReturnTo("/profile"))
}

type nopAuth struct{}

func (nopAuth) Login(context.Context, model.Credentials) (model.LoginResponse, error) {
	return model.LoginResponse{}, nil
}
func (nopAuth) Refresh(context.Context, string) (model.LoginResponse, error) {
	return model.LoginResponse{}, nil
}
func (nopAuth) Logout(context.Context, string, string) {}

type memStore struct{ p *model.PersistedSession }

func (m *memStore) Load() (model.PersistedSession, bool) {
	if m.p == nil {
		return model.PersistedSession{}, false
	}
	return *m.p, true
}
func (m *memStore) Save(p model.PersistedSession) error { m.p = &p; return nil }
func (m *memStore) Clear() error                        { m.p = nil; return nil }

var _ store.Store = (*memStore)(nil)

func TestEvaluate_FollowsSessionManager(t *testing.T) {
	t.Parallel()

	st := &memStore{p: &model.PersistedSession{
		User:        &model.User{ID: "1", Email: "a@x.com", Role: "ROLE_STUDENT"},
		AccessToken: "t", RefreshToken: "r",
	}}
	m := service.NewSessionManager(nopAuth{}, st, nil)
	require.Equal(t, Render, Evaluate(m, "/dashboard").Outcome)

	m.Logout(context.Background())
	d := Evaluate(m, "/dashboard")
	require.Equal(t, Redirect, d.Outcome)
	require.Equal(t, "/dashboard", ReturnTo(d.From))
}
