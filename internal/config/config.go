// Package config loads client configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultAPIBaseURL is used when EDU_API_BASE_URL is unset or empty.
const DefaultAPIBaseURL = "http://localhost:8080"

// Config holds client configuration.
type Config struct {
	// APIBaseURL is the backend root without a trailing slash.
	APIBaseURL string `env:"EDU_API_BASE_URL"`
	// StateDir holds the persisted session and the sealing key.
	StateDir string `env:"EDU_STATE_DIR"`
	// HTTPTimeout bounds every backend call; it is the only timeout applied.
	HTTPTimeout time.Duration `env:"EDU_HTTP_TIMEOUT" envDefault:"30s"`
	// SealSession encrypts the persisted session at rest.
	SealSession bool `env:"EDU_SEAL_SESSION" envDefault:"true"`
	// LogLevel is a zap level name.
	LogLevel string `env:"EDU_LOG_LEVEL" envDefault:"warn"`
}

// ErrInvalidBaseURL is returned when the API base URL is not an absolute http(s) URL.
var ErrInvalidBaseURL = errors.New("config: invalid api base url")

// Load reads .env files (missing ones are ignored), then parses the environment.
// Only defaults are applied; call Normalize after any overrides.
func Load(dotenv ...string) (*Config, error) {
	_ = godotenv.Load(dotenv...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Normalize applies defaults and validates the base URL.
func (c *Config) Normalize() error {
	c.applyDefaults()
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}

func (c *Config) applyDefaults() {
	c.APIBaseURL = NormalizeBaseURL(c.APIBaseURL)
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir()
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// NormalizeBaseURL strips one trailing slash and falls back to DefaultAPIBaseURL.
func NormalizeBaseURL(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultAPIBaseURL
	}
	return strings.TrimSuffix(v, "/")
}

// DefaultStateDir follows XDG: $XDG_CONFIG_HOME/edu-web or ~/.config/edu-web.
func DefaultStateDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "edu-web")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "edu-web")
}
