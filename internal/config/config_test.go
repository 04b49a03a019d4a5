package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EDU_API_BASE_URL", "EDU_STATE_DIR", "EDU_HTTP_TIMEOUT", "EDU_SEAL_SESSION", "EDU_LOG_LEVEL"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, filepath.Join(xdg, "edu-web"), cfg.StateDir)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.SealSession)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDU_API_BASE_URL", "https://api.example.com/")
	t.Setenv("EDU_STATE_DIR", "/tmp/edu")
	t.Setenv("EDU_HTTP_TIMEOUT", "5s")
	t.Setenv("EDU_SEAL_SESSION", "false")
	t.Setenv("EDU_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/edu", cfg.StateDir)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.SealSession)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("EDU_API_BASE_URL=http://backend:9000/\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("EDU_API_BASE_URL") })

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.APIBaseURL)
}

func TestLoad_InvalidBaseURLIsCheckedByNormalize(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDU_API_BASE_URL", "ftp://nope")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Normalize(), ErrInvalidBaseURL)

	// an override replaces the bad value before validation
	cfg.APIBaseURL = "https://api.example.com/"
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
}

func TestNormalize_Rejects(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"ftp://h", "http://", "localhost:8080", "://bad"} {
		c := Config{APIBaseURL: v}
		require.ErrorIs(t, c.Normalize(), ErrInvalidBaseURL, v)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultAPIBaseURL, NormalizeBaseURL(""))
	assert.Equal(t, DefaultAPIBaseURL, NormalizeBaseURL("   "))
	assert.Equal(t, "http://h:1", NormalizeBaseURL("http://h:1/"))
	assert.Equal(t, "http://h:1/api", NormalizeBaseURL("http://h:1/api"))
}
