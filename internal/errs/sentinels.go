// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across transport/service layers.
var (
	// ErrUnreachable indicates no response was obtained from the backend.
	ErrUnreachable = errors.New("server unreachable")

	// ErrServer indicates the backend answered with a non-2xx status.
	ErrServer = errors.New("server rejected request")

	// ErrValidation indicates client-side input validation failed; nothing was sent.
	ErrValidation = errors.New("validation failed")

	// ErrNoRefreshToken indicates a refresh was attempted without a refresh token held.
	ErrNoRefreshToken = errors.New("missing refresh token")

	// ErrIncompleteSession indicates a login/refresh payload lacked user id or tokens.
	ErrIncompleteSession = errors.New("incomplete session in server response")

	// ErrMissingUserID indicates a profile write was attempted without an authenticated user id.
	ErrMissingUserID = errors.New("missing user id")
)
