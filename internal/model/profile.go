package model

import "strings"

// Profile is the per-user record kept by the backend, separate from the identity.
type Profile struct {
	UserID      string  `json:"userId"`
	FullName    *string `json:"fullName"`
	AvatarURL   *string `json:"avatarUrl"`
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// ProfileInput is the form-shaped payload with split name and address parts.
type ProfileInput struct {
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	PostalCode string  `json:"postalCode"`
	Phone      string  `json:"phone"`
	Bio        string  `json:"bio"`
	AvatarURL  *string `json:"avatarUrl"`
}

// ProfileRequest is the flattened body of profile create/update calls.
type ProfileRequest struct {
	UserID      string  `json:"userId"`
	FullName    string  `json:"fullName"`
	AvatarURL   *string `json:"avatarUrl"`
	Bio         string  `json:"bio"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     *string `json:"address,omitempty"`
}

// SplitFullName splits on whitespace: first word, then the rest joined by single spaces.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// EmailLocalPart returns the part of an address before '@'.
func EmailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
