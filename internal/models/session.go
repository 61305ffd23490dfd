package models

// SessionState is the hydrated view of the caller's session. The zero value
// is loading: no hydration attempt has completed yet.
type SessionState struct {
	Identity *Identity `json:"user,omitempty"`
	Hydrated bool      `json:"-"`
}

// Anonymous is a completed hydration with no identity.
func Anonymous() SessionState {
	return SessionState{Hydrated: true}
}

// Authenticated wraps a hydrated identity.
func Authenticated(identity Identity) SessionState {
	return SessionState{Identity: &identity, Hydrated: true}
}

// IsLoading reports whether hydration has not completed.
func (s SessionState) IsLoading() bool { return !s.Hydrated }

// IsAuthenticated reports whether a hydrated identity is present.
func (s SessionState) IsAuthenticated() bool { return s.Hydrated && s.Identity != nil }

// Role returns the identity role or empty when anonymous.
func (s SessionState) Role() UserRole {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
