// Package guard decides whether a protected view may be shown.
package guard

// LoginPath is where unauthenticated visitors are sent.
const LoginPath = "/login"

// Flags are the derived session flags a guard reads.
type Flags interface {
	IsAuthenticated() bool
	IsAuthenticating() bool
}

// Outcome is what the caller should do with a protected view.
type Outcome int

const (
	Render Outcome = iota
	Loading
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of Evaluate. Location and From are set only for Redirect.
type Decision struct {
	Outcome  Outcome
	Location string
	From     string
}

// Evaluate derives the decision for the requested location from the current flags only.
func Evaluate(f Flags, requested string) Decision {
	switch {
	case f.IsAuthenticating():
		return Decision{Outcome: Loading}
	case !f.IsAuthenticated():
		return Decision{Outcome: Redirect, Location: LoginPath, From: requested}
	default:
		return Decision{Outcome: Render}
	}
}

// ReturnTo is where a successful login should go back to.
func ReturnTo(from string) string {
	if from == "" {
		return "/"
	}
	return from
}
