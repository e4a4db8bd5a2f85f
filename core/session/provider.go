package session

import (
	"context"
	"errors"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/darasa/console/core"
	"github.com/darasa/console/core/identity"
)

// ErrLoginPending is returned when a login is attempted while another one is
// still waiting on the gateway. Logins are never raced against each other.
var ErrLoginPending = errors.New("a login attempt is already in progress")

// Provider owns the process-wide Session: it hydrates it from the Store at
// startup, mutates it on login/logout/profile updates, and hands out
// snapshots to everything else. Only the Provider writes to the Store.
type Provider struct {
	store  Store
	gw     identity.Gateway
	logger core.Logger

	mu           sync.Mutex
	sess         Session
	loginPending bool
}

// NewProvider hydrates the session from the store and returns a ready
// Provider. A store failure or corrupt record degrades to an empty session;
// it is never an error to start logged out.
func NewProvider(store Store, gw identity.Gateway, logger core.Logger) *Provider {
	p := &Provider{
		store:  store,
		gw:     gw,
		logger: logger,
		sess:   Session{Loading: true},
	}
	p.hydrate()
	return p
}

func (p *Provider) hydrate() {
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok, err := p.store.Load()
	if err != nil {
		p.logger.Error("session: hydration failed; starting logged out", err)
	}
	if err == nil && ok {
		ident := rec.Identity
		p.sess = Session{Identity: &ident, Token: rec.Token}
	} else {
		p.sess = Session{}
	}
}

// Current returns a snapshot of the session. The Identity pointer refers to a
// copy; callers may not mutate shared state through it.
func (p *Provider) Current() Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot()
}

func (p *Provider) snapshot() Session {
	sess := p.sess
	if p.sess.Identity != nil {
		ident := *p.sess.Identity
		sess.Identity = &ident
	}
	return sess
}

// Identity returns the current Identity, or nil when unauthenticated.
func (p *Provider) Identity() *identity.Identity {
	return p.Current().Identity
}

// Token returns the current access token, or "" when unauthenticated.
func (p *Provider) Token() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sess.Token
}

func (p *Provider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sess.IsAuthenticated()
}

// Login exchanges credentials for a session. On success the store is written
// before the in-memory session flips to authenticated. On any failure the
// session is left exactly as it was: there is no partial login.
//
// Failures are typed: *identity.AuthError for rejected credentials,
// *identity.TransportError for an unreachable or misbehaving gateway,
// ErrLoginPending when another login is still in flight.
func (p *Provider) Login(ctx context.Context, creds identity.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	if p.loginPending {
		p.mu.Unlock()
		return ErrLoginPending
	}
	p.loginPending = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.loginPending = false
		p.mu.Unlock()
	}()

	auth, err := p.gw.Authenticate(ctx, creds)
	if err != nil {
		return err
	}
	if !auth.Identity.Role.Known() {
		// the guard would treat this identity as unauthenticated anyway;
		// refuse it up front instead of persisting a session that cannot
		// pass any protected-screen check
		return &identity.TransportError{Err: pkgerrors.Errorf("gateway returned unknown role %q", auth.Identity.Role)}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	rec := Record{Token: auth.Token, Identity: auth.Identity}
	if err := p.store.Save(rec); err != nil {
		// the session still works for this process; it just will not
		// survive a restart
		p.logger.Error("session: persisting session failed", err, auth.Identity)
	}
	ident := auth.Identity
	p.sess = Session{Identity: &ident, Token: auth.Token}
	return nil
}

// Register forwards to the gateway and returns its result verbatim. It never
// touches the session: registering is deliberately followed by a manual login.
func (p *Provider) Register(ctx context.Context, reg identity.Registration) (identity.Identity, error) {
	if err := reg.Validate(); err != nil {
		return identity.Identity{}, err
	}
	return p.gw.Register(ctx, reg)
}

// Logout clears the store and resets the in-memory session. It is safe to
// call with no active session.
func (p *Provider) Logout() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.Clear(); err != nil {
		p.logger.Error("session: clearing persisted session failed", err)
	}
	p.sess = Session{}
}

// UpdateIdentity merges a profile patch into the current Identity and
// persists the result. It is a no-op when unauthenticated.
func (p *Provider) UpdateIdentity(patch identity.Patch) error {
	if err := patch.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.sess.IsAuthenticated() || patch.IsEmpty() {
		return nil
	}
	merged := patch.Apply(*p.sess.Identity)
	if err := p.store.Save(Record{Token: p.sess.Token, Identity: merged}); err != nil {
		p.logger.Error("session: persisting identity update failed", err, merged)
	}
	p.sess.Identity = &merged
	return nil
}
