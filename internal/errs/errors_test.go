package errs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationError_Is(t *testing.T) {
	t.Parallel()

	err := error(Invalid("email", "email is required"))
	require.ErrorIs(t, err, ErrValidation)
	require.EqualError(t, err, "email is required")

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "email", ve.Field)
}

func TestNetworkError_UnwrapsSentinelAndCause(t *testing.T) {
	t.Parallel()

	err := error(&NetworkError{Message: "cannot reach server", Err: context.DeadlineExceeded})
	require.ErrorIs(t, err, ErrUnreachable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, "cannot reach server", err.Error())

	bare := error(&NetworkError{Message: "x"})
	require.ErrorIs(t, bare, ErrUnreachable)
}

func TestServerError_Is(t *testing.T) {
	t.Parallel()

	err := error(&ServerError{Status: 401, Message: "bad credentials"})
	require.ErrorIs(t, err, ErrServer)
	require.False(t, errors.Is(err, ErrUnreachable))
	require.EqualError(t, err, "bad credentials")
}
