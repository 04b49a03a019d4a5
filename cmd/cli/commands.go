package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/edu-web/internal/guard"
	"github.com/and161185/edu-web/internal/model"
	"github.com/and161185/edu-web/internal/service"
)

// Locations the guarded commands stand for.
const (
	dashboardPath = "/dashboard"
	profilePath   = "/profile"
)

var errAuthenticating = errors.New("authenticating...")

type loginRequiredError struct{ from string }

func (e *loginRequiredError) Error() string {
	return fmt.Sprintf("login required (return to %s)", guard.ReturnTo(e.from))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// guarded maps the route guard decision for path onto a command error.
func (a *app) guarded(path string) error {
	d := guard.Evaluate(a.session, path)
	switch d.Outcome {
	case guard.Loading:
		return errAuthenticating
	case guard.Redirect:
		return &loginRequiredError{from: d.From}
	default:
		return nil
	}
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := newFlagSet("signup")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	confirm := fs.String("confirm", "", "password confirmation")
	if err := parse(fs, args); err != nil {
		return err
	}

	err := a.signup.Submit(ctx, model.SignupRequest{Email: *email, Password: *password, PasswordConfirm: *confirm})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	next := fs.String("next", "", "location to return to")
	if err := parse(fs, args); err != nil {
		return err
	}

	cred := model.Credentials{Email: *email, Password: *password}
	if err := service.ValidateCredentials(cred); err != nil {
		return err
	}
	if _, err := a.session.Login(ctx, cred); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "ok %s\n", guard.ReturnTo(*next))
	return nil
}

func (a *app) cmdLogout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "ok")
}

func (a *app) cmdRefresh(ctx context.Context) error {
	if _, err := a.session.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

type statusView struct {
	Status    model.Status `json:"status"`
	Email     string       `json:"email,omitempty"`
	Role      string       `json:"role,omitempty"`
	ExpiresAt string       `json:"access_expires_at,omitempty"`
}

func (a *app) cmdStatus() {
	s := a.session.Snapshot()
	v := statusView{Status: s.Status}
	if s.User != nil {
		v.Email = s.User.Email
		v.Role = model.RoleLabel(s.User.Role)
	}
	if exp, ok := s.AccessExpiry(); ok {
		v.ExpiresAt = exp.UTC().Format(time.RFC3339)
	}
	printJSON(a.out, v)
}

func (a *app) cmdWhoami() error {
	if err := a.guarded(dashboardPath); err != nil {
		return err
	}
	u := a.session.User()
	fmt.Fprintf(a.out, "%s\t%s\n", u.Email, model.RoleLabel(u.Role))
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	if err := a.guarded(profilePath); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		p, err := a.profile.Load(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Fprintln(a.out, "no profile yet")
			return nil
		}
		printJSON(a.out, p)
		return nil
	case "save":
		return a.cmdProfileSave(ctx, args[1:])
	default:
		return errUsage
	}
}

func (a *app) cmdProfileSave(ctx context.Context, args []string) error {
	// the loaded profile decides between create and update; a failed load leaves create mode
	if _, err := a.profile.Load(ctx); err != nil {
		a.log.Warn("load profile before save", zap.Error(err))
	}
	in := a.profile.InitialForm()

	fs := newFlagSet("profile save")
	first := fs.String("first", "", "first name")
	last := fs.String("last", "", "last name")
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone number")
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state or region")
	country := fs.String("country", "", "country")
	postal := fs.String("postal", "", "postal code")
	bio := fs.String("bio", "", "short bio")
	avatar := fs.String("avatar", "", "avatar url")
	if err := parse(fs, args); err != nil {
		return err
	}

	override(&in.FirstName, *first)
	override(&in.LastName, *last)
	override(&in.Email, *email)
	override(&in.Phone, *phone)
	override(&in.Address, *address)
	override(&in.City, *city)
	override(&in.State, *state)
	override(&in.Country, *country)
	override(&in.PostalCode, *postal)
	override(&in.Bio, *bio)
	if v := strings.TrimSpace(*avatar); v != "" {
		in.AvatarURL = &v
	}

	_, outcome, err := a.profile.Save(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, outcome)
	return nil
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
