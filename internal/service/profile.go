package service

import (
	"context"

	"github.com/and161185/edu-web/internal/errs"
	"github.com/and161185/edu-web/internal/model"
)

// ProfileAPI is the profile transport used by ProfileFlow.
type ProfileAPI interface {
	GetProfile(ctx context.Context, token, userID string) (*model.Profile, error)
	CreateProfile(ctx context.Context, token, userID string, in model.ProfileInput) (*model.Profile, error)
	UpdateProfile(ctx context.Context, token, userID string, in model.ProfileInput) (*model.Profile, error)
}

// SessionView is the read-only session access the profile flow needs.
type SessionView interface {
	Snapshot() model.Session
}

// ProfileOutcome tells whether Save created or updated the profile.
type ProfileOutcome int

const (
	ProfileCreated ProfileOutcome = iota + 1
	ProfileUpdated
)

func (o ProfileOutcome) String() string {
	switch o {
	case ProfileCreated:
		return "profile created"
	case ProfileUpdated:
		return "profile updated"
	default:
		return "unknown"
	}
}

// ProfileFlow owns the in-memory copy of the current user's profile.
// A nil profile means none exists yet and selects create over update.
// Not safe for concurrent use.
type ProfileFlow struct {
	api     ProfileAPI
	session SessionView
	profile *model.Profile
}

// NewProfileFlow constructs a ProfileFlow bound to the session's identity and token.
func NewProfileFlow(api ProfileAPI, session SessionView) *ProfileFlow {
	return &ProfileFlow{api: api, session: session}
}

// Load fetches the profile. Without a token or user id it yields (nil, nil) and calls nothing.
// On error the previously loaded copy is kept.
func (f *ProfileFlow) Load(ctx context.Context) (*model.Profile, error) {
	s := f.session.Snapshot()
	if s.AccessToken == "" || s.User == nil || s.User.ID == "" {
		f.profile = nil
		return nil, nil
	}
	p, err := f.api.GetProfile(ctx, s.AccessToken, s.User.ID)
	if err != nil {
		return nil, err
	}
	f.profile = p
	return p, nil
}

// Profile returns the loaded profile, or nil.
func (f *ProfileFlow) Profile() *model.Profile { return f.profile }

// Exists reports whether a profile is loaded, i.e. Save would update.
func (f *ProfileFlow) Exists() bool { return f.profile != nil }

// InitialForm seeds the edit form from the loaded profile and the session identity.
func (f *ProfileFlow) InitialForm() model.ProfileInput {
	var email string
	if u := f.session.Snapshot().User; u != nil {
		email = u.Email
	}
	in := model.ProfileInput{Email: email}
	if f.profile != nil {
		in.FirstName, in.LastName = model.SplitFullName(model.Deref(f.profile.FullName))
		in.Phone = model.Deref(f.profile.PhoneNumber)
		in.Address = model.Deref(f.profile.Address)
		in.Bio = model.Deref(f.profile.Bio)
		in.AvatarURL = f.profile.AvatarURL
	}
	if in.FirstName == "" && email != "" {
		in.FirstName = model.EmailLocalPart(email)
	}
	return in
}

// Save validates the input, then creates or updates depending on whether a profile is loaded.
func (f *ProfileFlow) Save(ctx context.Context, in model.ProfileInput) (*model.Profile, ProfileOutcome, error) {
	s := f.session.Snapshot()
	if s.User == nil || s.User.ID == "" {
		return nil, 0, errs.ErrMissingUserID
	}
	if err := ValidateProfileInput(in); err != nil {
		return nil, 0, err
	}

	var (
		p       *model.Profile
		outcome ProfileOutcome
		err     error
	)
	if f.profile == nil {
		p, err = f.api.CreateProfile(ctx, s.AccessToken, s.User.ID, in)
		outcome = ProfileCreated
	} else {
		p, err = f.api.UpdateProfile(ctx, s.AccessToken, s.User.ID, in)
		outcome = ProfileUpdated
	}
	if err != nil {
		return nil, 0, err
	}
	f.profile = p
	return p, outcome, nil
}
