package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/and161185/edu-web/internal/errs"
	"github.com/and161185/edu-web/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type credentialsForm struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileForm struct {
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
}

// ValidateCredentials requires a non-blank email and a non-empty password.
func ValidateCredentials(c model.Credentials) error {
	return check(credentialsForm{Email: strings.TrimSpace(c.Email), Password: c.Password})
}

// ValidateSignup requires a non-blank email, a password and a matching confirmation.
func ValidateSignup(r model.SignupRequest) error {
	r.Email = strings.TrimSpace(r.Email)
	if err := check(r); err != nil {
		return err
	}
	if r.Password != r.PasswordConfirm {
		return errs.Invalid("passwordConfirm", "password and confirmation must match")
	}
	return nil
}

// ValidateProfileInput requires first name, last name, email and phone.
func ValidateProfileInput(in model.ProfileInput) error {
	return check(profileForm{
		Email:     strings.TrimSpace(in.Email),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
	})
}

// check runs struct validation and reports the first failing field.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}
	fe := ves[0]
	switch fe.Tag() {
	case "required":
		return errs.Invalid(fe.Field(), "%s is required", fe.Field())
	default:
		return errs.Invalid(fe.Field(), "%s is invalid", fe.Field())
	}
}
