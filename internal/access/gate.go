// Package access decides whether a session may open a dashboard route and
// which navigation entries each role is offered.
package access

import (
	"net/url"
	"strings"

	"github.com/noah-isme/ur-campus-api/internal/models"
)

// Outcome is the result of evaluating the gate.
type Outcome string

const (
	OutcomeLoading       Outcome = "loading"
	OutcomeRedirectLogin Outcome = "redirect_login"
	OutcomeDenied        Outcome = "denied"
	OutcomeAllow         Outcome = "allow"
)

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// Decision describes what the shell should render for a route.
type Decision struct {
	Outcome  Outcome `json:"outcome"`
	Redirect string  `json:"redirect,omitempty"`
	From     string  `json:"from,omitempty"`
	Message  string  `json:"message,omitempty"`
}

// Allowed reports whether content may be rendered.
func (d Decision) Allowed() bool { return d.Outcome == OutcomeAllow }

// Gate evaluates route access. It holds no state and is evaluated on every
// navigation so role changes apply immediately.
type Gate struct{}

// Evaluate decides access to requested for state. An empty allowedRoles means
// any authenticated identity may enter.
func (Gate) Evaluate(allowedRoles []models.UserRole, state models.SessionState, requested string) Decision {
	if state.IsLoading() {
		return Decision{Outcome: OutcomeLoading}
	}
	if !state.IsAuthenticated() {
		return Decision{
			Outcome:  OutcomeRedirectLogin,
			Redirect: LoginPath + "?from=" + url.QueryEscape(requested),
			From:     requested,
		}
	}
	if len(allowedRoles) > 0 && !hasRole(allowedRoles, state.Role()) {
		return Decision{
			Outcome:  OutcomeDenied,
			Redirect: UnauthorizedPath,
			Message:  DeniedMessage(allowedRoles),
		}
	}
	return Decision{Outcome: OutcomeAllow}
}

// DeniedMessage names the roles a page requires.
func DeniedMessage(allowedRoles []models.UserRole) string {
	names := make([]string, 0, len(allowedRoles))
	for _, r := range allowedRoles {
		names = append(names, string(r))
	}
	return "You don't have permission to access this page. Required role: " + strings.Join(names, ", ")
}

func hasRole(roles []models.UserRole, role models.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
