package session

import "github.com/darasa/console/core/identity"

// Session is the process-wide holder of at most one Identity plus its access
// token. Token and Identity are always set and cleared together.
type Session struct {
	Identity *identity.Identity
	Token    string

	// Loading is true only while the Provider hydrates from the Store.
	// Consumers must not render protected content while it is set.
	Loading bool
}

// IsAuthenticated reports whether an Identity is present. An Identity whose
// role is outside the closed set does not authenticate anything; the guard
// treats it the same as no session at all.
func (s Session) IsAuthenticated() bool {
	return s.Identity != nil && s.Identity.Role.Known()
}

// Role returns the session's role, or the empty Role when unauthenticated.
func (s Session) Role() identity.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}
