package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/and161185/edu-web/internal/errs"
	"github.com/and161185/edu-web/internal/model"
)

// DefaultFullName is sent when neither name parts nor an email local part are available.
const DefaultFullName = "User"

// MsgProfileUnreachable is returned when the profile service gives no response.
const MsgProfileUnreachable = "cannot reach the profile service, please try again later"

// GetProfile loads a user's profile, or the caller's own when userID is empty.
// A 404 or 204 means no profile yet and yields (nil, nil).
func (c *Client) GetProfile(ctx context.Context, token, userID string) (*model.Profile, error) {
	path := "/api/users/profiles/me"
	if userID != "" {
		path = "/api/users/profiles/" + url.PathEscape(userID)
	}
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, &errs.NetworkError{Message: MsgProfileUnreachable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusNoContent:
		return nil, nil
	case !ok(resp.StatusCode):
		return nil, &errs.ServerError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("failed to fetch profile: %d", resp.StatusCode),
		}
	}
	var p model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// CreateProfile creates userID's profile from form input.
func (c *Client) CreateProfile(ctx context.Context, token, userID string, in model.ProfileInput) (*model.Profile, error) {
	return c.writeProfile(ctx, http.MethodPost, "/api/users/profiles", "create", token, userID, in)
}

// UpdateProfile replaces userID's profile from form input.
func (c *Client) UpdateProfile(ctx context.Context, token, userID string, in model.ProfileInput) (*model.Profile, error) {
	return c.writeProfile(ctx, http.MethodPut, "/api/users/profiles/"+url.PathEscape(userID), "update", token, userID, in)
}

func (c *Client) writeProfile(ctx context.Context, method, path, op, token, userID string, in model.ProfileInput) (*model.Profile, error) {
	resp, err := c.do(ctx, method, path, token, BuildProfileRequest(userID, in))
	if err != nil {
		return nil, &errs.NetworkError{Message: MsgProfileUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		return nil, &errs.ServerError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%s failed: %d %s", op, resp.StatusCode, readText(resp)),
		}
	}
	var p model.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// BuildProfileRequest flattens form input into the backend shape.
func BuildProfileRequest(userID string, in model.ProfileInput) model.ProfileRequest {
	return model.ProfileRequest{
		UserID:      userID,
		FullName:    FullName(in),
		AvatarURL:   in.AvatarURL,
		Bio:         strings.TrimSpace(in.Bio),
		PhoneNumber: strings.TrimSpace(in.Phone),
		Address:     Address(in),
	}
}

// FullName joins first and last name; falls back to the email local part, then DefaultFullName.
func FullName(in model.ProfileInput) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{in.FirstName, in.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if local := model.EmailLocalPart(strings.TrimSpace(in.Email)); local != "" {
		return local
	}
	return DefaultFullName
}

// Address joins the non-empty address, city, state, country and postal parts with ", ".
func Address(in model.ProfileInput) *string {
	var parts []string
	for _, p := range []string{in.Address, in.City, in.State, in.Country, in.PostalCode} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	s := strings.Join(parts, ", ")
	return &s
}
