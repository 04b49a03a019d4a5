package errs

import "fmt"

// ValidationError is a client-side input rejection that blocks submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError for the given field.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NetworkError replaces a raw transport failure with a user-facing message.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string { return e.Message }

// Unwrap exposes both ErrUnreachable and the underlying cause.
func (e *NetworkError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnreachable}
	}
	return []error{ErrUnreachable, e.Err}
}

// ServerError is a non-2xx backend response with the message extracted from its body.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// Unwrap makes errors.Is(err, ErrServer) hold.
func (e *ServerError) Unwrap() error { return ErrServer }
