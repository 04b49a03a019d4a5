// Package transport performs the backend REST calls and maps failures to domain errors.
// The client holds no session state; tokens are passed per call.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	u "github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

// RequestIDHeader carries a per-request UUID for correlating client and server logs.
const RequestIDHeader = "X-Request-ID"

// Client talks to the backend at a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New constructs a Client with its own http.Client bounded by timeout.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout}, log)
}

// NewWithHTTPClient wraps hc's transport with request logging.
func NewWithHTTPClient(baseURL string, hc *http.Client, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if hc == nil {
		hc = &http.Client{}
	}
	wrapped := *hc
	wrapped.Transport = LoggingTransport(hc.Transport, log)
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &wrapped,
		log:     log,
	}
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string { return c.baseURL }

// do sends a JSON request. A nil body sends no payload. token adds a bearer header.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id, err := u.NewV4(); err == nil {
		req.Header.Set(RequestIDHeader, id.String())
	}
	return c.http.Do(req)
}

func ok(status int) bool { return status >= 200 && status < 300 }

// readText drains the body as text, trimmed.
func readText(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return strings.TrimSpace(string(b))
}
