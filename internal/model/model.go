// Package model defines domain entities shared by the session core, transport and CLI.
package model

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status is the authentication lifecycle state of a Session.
type Status string

const (
	StatusUnauthenticated Status = "unauthenticated"
	StatusAuthenticating  Status = "authenticating"
	StatusAuthenticated   Status = "authenticated"
)

// User is the identity bound to a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"` // canonical, see NormalizeRole
}

// Session is the client-held identity and token pair. Empty strings mean absent.
type Session struct {
	User         *User
	AccessToken  string
	RefreshToken string
	Status       Status
}

// Valid reports whether user and both tokens are present.
func (s Session) Valid() bool {
	return s.User != nil && s.AccessToken != "" && s.RefreshToken != ""
}

// AccessExpiry decodes the exp claim of the access token without verifying its signature.
// Display only; nothing is scheduled from it.
func (s Session) AccessExpiry() (time.Time, bool) {
	if s.AccessToken == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Credentials are the login form values.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the registration form payload.
type SignupRequest struct {
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

// LoginResponse is the raw backend session payload returned by login and refresh.
type LoginResponse struct {
	UserID       string `json:"userId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// UserFromResponse maps a backend payload to the canonical identity.
func UserFromResponse(r LoginResponse) User {
	return User{ID: r.UserID, Email: r.Email, Role: NormalizeRole(r.Role)}
}

// PersistedSession is the durable record kept across restarts.
type PersistedSession struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether every field required to restore a session is present.
func (p PersistedSession) Complete() bool {
	return p.User != nil && strings.TrimSpace(p.User.ID) != "" && p.AccessToken != "" && p.RefreshToken != ""
}
