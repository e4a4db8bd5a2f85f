package access

import (
	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/session"
)

// Decision is the guard's verdict for one protected-screen render.
type Decision int

const (
	// Wait means the session is still hydrating; render nothing yet.
	// Redirecting now would bounce an already-logged-in user to the login
	// screen on every refresh.
	Wait Decision = iota
	// Render lets the screen through.
	Render
	// RedirectLogin sends an unauthenticated user to the login screen.
	RedirectLogin
	// RedirectHome sends an authenticated but unauthorized user back to the
	// generic dashboard.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "WAIT"
	case Render:
		return "RENDER"
	case RedirectLogin:
		return "REDIRECT_LOGIN"
	case RedirectHome:
		return "REDIRECT_HOME"
	default:
		return "UNKNOWN"
	}
}

// Authorize decides whether a screen restricted to the given roles may render
// under the given session. An empty role list means any authenticated role.
//
// It is pure and total: every session/role-set combination maps to exactly
// one Decision, and membership is a case-sensitive exact match against the
// closed role set. A session whose identity carries an unrecognized role is
// not authenticated at all and goes to the login screen.
func Authorize(sess session.Session, allowed ...identity.Role) Decision {
	if sess.Loading {
		return Wait
	}
	if !sess.IsAuthenticated() {
		return RedirectLogin
	}
	if len(allowed) == 0 {
		return Render
	}
	role := sess.Role()
	for _, r := range allowed {
		if role == r {
			return Render
		}
	}
	return RedirectHome
}
