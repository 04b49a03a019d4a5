package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownRole is the canonical role when the backend sends none.
const UnknownRole = "UNKNOWN"

// NormalizeRole reduces a decorated backend role such as "[ROLE_A, ROLE_B]" to its first value.
func NormalizeRole(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	first, _, _ := strings.Cut(s, ",")
	first = strings.TrimSpace(first)
	if first == "" {
		return UnknownRole
	}
	return first
}

// RoleLabel renders a canonical role for display: "ROLE_COURSE_ADMIN" -> "Course Admin".
func RoleLabel(role string) string {
	if role == "" {
		role = UnknownRole
	}
	if len(role) >= 5 && strings.EqualFold(role[:5], "ROLE_") {
		role = role[5:]
	}
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(role, "_", " ")))
	// cases.Caser keeps state, so one per call.
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
