package transport

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

type loggingTransport struct {
	next http.RoundTripper
	log  *zap.Logger
}

// LoggingTransport returns a RoundTripper that logs request metadata; payloads are never logged.
func LoggingTransport(next http.RoundTripper, log *zap.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return loggingTransport{next: next, log: log}
}

func (t loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", req.Header.Get(RequestIDHeader)),
		zap.Duration("dur", time.Since(start)),
	}
	if err != nil {
		t.log.Info("http", append(fields, zap.Error(err))...)
		return resp, err
	}
	t.log.Info("http", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}
