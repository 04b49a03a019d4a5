// Package store persists the last-known authenticated session across restarts.
package store

import (
	"net/url"
	"strings"

	"github.com/and161185/edu-web/internal/model"
)

// Key is the namespaced name of the persisted session record.
const Key = "edu-web-fe.auth"

// Store is durable persistence for one session record.
// Load never fails: unreadable or corrupt records are reported as absent.
type Store interface {
	// Load returns the stored session, or false if there is none usable.
	Load() (model.PersistedSession, bool)
	// Save replaces the stored session.
	Save(p model.PersistedSession) error
	// Clear removes the stored session; a missing record is not an error.
	Clear() error
}

// Nop is the absent storage capability: nothing is ever persisted.
type Nop struct{}

var _ Store = Nop{}

func (Nop) Load() (model.PersistedSession, bool) { return model.PersistedSession{}, false }
func (Nop) Save(model.PersistedSession) error    { return nil }
func (Nop) Clear() error                         { return nil }

// Origin returns a filesystem-safe scheme_host_port identifier for a base URL.
func Origin(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return sanitize(baseURL)
	}
	port := u.Port()
	if port == "" {
		switch u.Scheme {
		case "https":
			port = "443"
		default:
			port = "80"
		}
	}
	return sanitize(strings.ToLower(u.Scheme + "_" + u.Hostname() + "_" + port))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
