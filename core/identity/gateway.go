package identity

import "context"

// Auth is the result of a successful credential exchange: an opaque access
// token plus the authenticated Identity. The console never inspects the token.
type Auth struct {
	Token    string   `json:"token"`
	Identity Identity `json:"user"`
}

// Gateway is the remote authentication API. The console consumes it; it never
// implements it (services/gateway holds the HTTP client and a dev fake).
type Gateway interface {
	// Authenticate exchanges credentials for a token and Identity.
	// Rejected credentials yield an *AuthError; anything else that goes
	// wrong on the wire yields a *TransportError.
	Authenticate(ctx context.Context, creds Credentials) (Auth, error)

	// Register creates a new account. It never authenticates: the returned
	// Identity is informational and the caller is expected to log in next.
	Register(ctx context.Context, reg Registration) (Identity, error)
}

// AuthError is a credential rejection (wrong username/password, deactivated
// account). Reason is safe to display.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authentication failed"
	}
	return e.Reason
}

// TransportError is a gateway failure unrelated to credentials: network
// error, unexpected status, malformed response. Retrying may help.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "authentication service unavailable"
	}
	return "authentication service unavailable: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }
