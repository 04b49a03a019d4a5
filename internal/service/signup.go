package service

import (
	"context"

	"github.com/and161185/edu-web/internal/model"
)

// SignupAPI is the registration transport.
type SignupAPI interface {
	Signup(ctx context.Context, req model.SignupRequest) error
}

// SignupFlow validates the registration form before submitting it.
type SignupFlow struct {
	api SignupAPI
}

// NewSignupFlow constructs a SignupFlow.
func NewSignupFlow(api SignupAPI) *SignupFlow { return &SignupFlow{api: api} }

// Submit registers the account; invalid input never reaches the transport.
func (f *SignupFlow) Submit(ctx context.Context, req model.SignupRequest) error {
	if err := ValidateSignup(req); err != nil {
		return err
	}
	return f.api.Signup(ctx, req)
}
