package model

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"[ROLE_STUDENT]":       "ROLE_STUDENT",
		"[ROLE_A, ROLE_B]":     "ROLE_A",
		"ROLE_TEACHER":         "ROLE_TEACHER",
		" [ ROLE_X ,ROLE_Y] ":  "ROLE_X",
		"":                     UnknownRole,
		"[]":                   UnknownRole,
		"ROLE_ADMIN,ROLE_USER": "ROLE_ADMIN",
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestRoleLabel(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Student", RoleLabel("ROLE_STUDENT"))
	require.Equal(t, "Course Admin", RoleLabel("ROLE_COURSE_ADMIN"))
	require.Equal(t, "Teacher", RoleLabel("role_teacher"))
	require.Equal(t, "Unknown", RoleLabel(""))
	require.Equal(t, "Unknown", RoleLabel(UnknownRole))
}

func TestSession_Valid(t *testing.T) {
	t.Parallel()

	u := &User{ID: "1", Email: "a@x.com", Role: "ROLE_STUDENT"}
	require.True(t, Session{User: u, AccessToken: "t", RefreshToken: "r"}.Valid())
	require.False(t, Session{User: u, AccessToken: "t"}.Valid())
	require.False(t, Session{AccessToken: "t", RefreshToken: "r"}.Valid())
	require.False(t, Session{}.Valid())
}

func TestSession_AccessExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	got, ok := Session{AccessToken: signed}.AccessExpiry()
	require.True(t, ok)
	require.True(t, got.Equal(exp), "got %v want %v", got, exp)

	_, ok = Session{AccessToken: "opaque"}.AccessExpiry()
	require.False(t, ok)
	_, ok = Session{}.AccessExpiry()
	require.False(t, ok)
}

func TestUserFromResponse(t *testing.T) {
	t.Parallel()

	u := UserFromResponse(LoginResponse{UserID: "1", Email: "a@x.com", Role: "[ROLE_STUDENT]"})
	require.Equal(t, User{ID: "1", Email: "a@x.com", Role: "ROLE_STUDENT"}, u)
}

func TestPersistedSession_Complete(t *testing.T) {
	t.Parallel()

	require.True(t, PersistedSession{User: &User{ID: "1"}, AccessToken: "t", RefreshToken: "r"}.Complete())
	require.False(t, PersistedSession{User: &User{}, AccessToken: "t", RefreshToken: "r"}.Complete())
	require.False(t, PersistedSession{AccessToken: "t", RefreshToken: "r"}.Complete())
	require.False(t, PersistedSession{User: &User{ID: "1"}, AccessToken: "t"}.Complete())
}

func TestSplitFullName(t *testing.T) {
	t.Parallel()

	f, l := SplitFullName("  Jane   Mary  Doe ")
	require.Equal(t, "Jane", f)
	require.Equal(t, "Mary Doe", l)

	f, l = SplitFullName("")
	require.Empty(t, f)
	require.Empty(t, l)

	f, l = SplitFullName("Solo")
	require.Equal(t, "Solo", f)
	require.Empty(t, l)
}

func TestEmailLocalPart_Deref(t *testing.T) {
	t.Parallel()

	require.Equal(t, "jane", EmailLocalPart("jane@x.com"))
	require.Equal(t, "plain", EmailLocalPart("plain"))

	s := "v"
	require.Equal(t, "v", Deref(&s))
	require.Equal(t, "", Deref(nil))
}
