package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/darasa/console/core"
	"github.com/darasa/console/core/access"
	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/session"
	dummygateway "github.com/darasa/console/services/gateway/dummy"
	inmemstore "github.com/darasa/console/storage/sessionstore/inmem"
	testutil "github.com/darasa/console/tests"
)

// spyStore wraps the in-memory store and counts writes.
type spyStore struct {
	*inmemstore.Store
	saves  int
	clears int
}

func (s *spyStore) Save(rec session.Record) error {
	s.saves++
	return s.Store.Save(rec)
}

func (s *spyStore) Clear() error {
	s.clears++
	return s.Store.Clear()
}

// gatewayStub lets a test script the gateway's behavior.
type gatewayStub struct {
	authFn func(ctx context.Context, creds identity.Credentials) (identity.Auth, error)
	regFn  func(ctx context.Context, reg identity.Registration) (identity.Identity, error)
}

func (g *gatewayStub) Authenticate(ctx context.Context, creds identity.Credentials) (identity.Auth, error) {
	return g.authFn(ctx, creds)
}

func (g *gatewayStub) Register(ctx context.Context, reg identity.Registration) (identity.Identity, error) {
	return g.regFn(ctx, reg)
}

func setup(t *testing.T) (*spyStore, *dummygateway.Service) {
	t.Helper()
	store := &spyStore{Store: inmemstore.Open()}
	gw := dummygateway.NewService("Darasa Console", []byte("test-secret"))
	seed := func(uname string, role identity.Role, pwd string) {
		if err := gw.Seed(testutil.NewIdentity(t, uname, role), pwd); err != nil {
			t.Fatalf("seeding %s failed: %v", uname, err)
		}
	}
	seed("root", identity.RoleSuperAdmin, "S3cure!Pass")
	seed("teacher.smith", identity.RoleTeacher, "S3cure!Pass")
	seed("student.banda", identity.RoleStudent, "S3cure!Pass")
	return store, gw
}

func Test_Provider_login(t *testing.T) {
	store, gw := setup(t)
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	if provider.IsAuthenticated() {
		t.Fatal("fresh provider must start unauthenticated")
	}

	err := provider.Login(context.Background(), identity.Credentials{Username: "teacher.smith", Password: "S3cure!Pass"})
	if err != nil {
		t.Fatalf("Login() error = %v; want nil", err)
	}
	if !provider.IsAuthenticated() {
		t.Error("Login() did not authenticate the session")
	}
	if got := provider.Current().Role(); got != identity.RoleTeacher {
		t.Errorf("Role() = %v; want %v", got, identity.RoleTeacher)
	}
	if provider.Token() == "" {
		t.Error("Login() left an empty token")
	}

	// a teacher screen renders; a super-admin screen bounces home
	if got := access.Authorize(provider.Current(), identity.RoleTeacher); got != access.Render {
		t.Errorf("Authorize(TEACHER) = %v; want RENDER", got)
	}
	if got := access.Authorize(provider.Current(), identity.RoleSuperAdmin); got != access.RedirectHome {
		t.Errorf("Authorize(SUPER_ADMIN) = %v; want REDIRECT_HOME", got)
	}

	// the session was persisted
	rec, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("store.Load() = (%v, %v); want a saved record", ok, err)
	}
	assert.Equal(t, "teacher.smith", rec.Identity.Username)
	assert.Equal(t, provider.Token(), rec.Token)
}

func Test_Provider_loginRejected(t *testing.T) {
	store, gw := setup(t)
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	tests := []struct {
		name  string
		creds identity.Credentials
	}{
		{name: "wrong password", creds: identity.Credentials{Username: "teacher.smith", Password: "nope"}},
		{name: "unknown user", creds: identity.Credentials{Username: "ghost", Password: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := provider.Login(context.Background(), tt.creds)
			var authErr *identity.AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("Login() error = %v; want *identity.AuthError", err)
			}
			if authErr.Reason != "Invalid credentials" {
				t.Errorf("Reason = %q; want %q", authErr.Reason, "Invalid credentials")
			}
			if provider.IsAuthenticated() {
				t.Error("failed login must not authenticate the session")
			}
			if store.saves != 0 {
				t.Errorf("store writes = %d; want none on failed login", store.saves)
			}
		})
	}
}

func Test_Provider_loginTransportFailure(t *testing.T) {
	store := &spyStore{Store: inmemstore.Open()}
	gw := &gatewayStub{
		authFn: func(context.Context, identity.Credentials) (identity.Auth, error) {
			return identity.Auth{}, &identity.TransportError{Err: errors.New("connection refused")}
		},
	}
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	err := provider.Login(context.Background(), identity.Credentials{Username: "teacher.smith", Password: "S3cure!Pass"})
	var transportErr *identity.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Login() error = %v; want *identity.TransportError", err)
	}
	if provider.IsAuthenticated() || store.saves != 0 {
		t.Error("transport failure must leave the session and store untouched")
	}
}

func Test_Provider_loginUnknownRole(t *testing.T) {
	store := &spyStore{Store: inmemstore.Open()}
	gw := &gatewayStub{
		authFn: func(context.Context, identity.Credentials) (identity.Auth, error) {
			return identity.Auth{Token: "abc", Identity: identity.Identity{ID: "1", Username: "odd", Role: "JANITOR"}}, nil
		},
	}
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	err := provider.Login(context.Background(), identity.Credentials{Username: "odd", Password: "whatever"})
	var transportErr *identity.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Login() error = %v; want *identity.TransportError for an unknown role", err)
	}
	if provider.IsAuthenticated() || store.saves != 0 {
		t.Error("an unknown role must never produce a session")
	}
}

func Test_Provider_concurrentLoginRejected(t *testing.T) {
	store := &spyStore{Store: inmemstore.Open()}
	started := make(chan struct{})
	release := make(chan struct{})
	var startedOnce sync.Once
	gw := &gatewayStub{
		authFn: func(context.Context, identity.Credentials) (identity.Auth, error) {
			startedOnce.Do(func() { close(started) })
			<-release
			return identity.Auth{}, &identity.AuthError{Reason: "Invalid credentials"}
		},
	}
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	creds := identity.Credentials{Username: "teacher.smith", Password: "S3cure!Pass"}
	done := make(chan error, 1)
	go func() {
		done <- provider.Login(context.Background(), creds)
	}()

	<-started // first login is now waiting on the gateway
	if err := provider.Login(context.Background(), creds); err != session.ErrLoginPending {
		t.Errorf("second Login() error = %v; want ErrLoginPending", err)
	}
	close(release)
	<-done

	// once the first attempt settles, logins are accepted again
	if err := provider.Login(context.Background(), creds); err == session.ErrLoginPending {
		t.Error("Login() still pending after the first attempt settled")
	}
}

func Test_Provider_register(t *testing.T) {
	store, gw := setup(t)
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	reg := identity.Registration{
		Username:        "parent_mwangi",
		Email:           "mwangi@test.cd",
		FirstName:       "Abdul",
		LastName:        "Mwangi",
		Password:        "S3cure!Pass",
		PasswordConfirm: "S3cure!Pass",
		Role:            identity.RoleParent,
		SchoolID:        "school-001",
	}
	ident, err := provider.Register(context.Background(), reg)
	if err != nil {
		t.Fatalf("Register() error = %v; want nil", err)
	}
	assert.Equal(t, identity.RoleParent, ident.Role)
	assert.NotEmpty(t, ident.ID)

	// registration never auto-authenticates
	if provider.IsAuthenticated() {
		t.Error("Register() must not authenticate the session")
	}
	if store.saves != 0 {
		t.Error("Register() must not touch the session store")
	}

	// the gateway's own rejection comes back verbatim
	_, err = provider.Register(context.Background(), reg)
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("duplicate Register() error = %v; want the gateway's *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "username" {
		t.Errorf("field errors = %+v; want one on username", vErr.Fields)
	}
}

func Test_Provider_logoutIdempotent(t *testing.T) {
	store, gw := setup(t)
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	if err := provider.Login(context.Background(), identity.Credentials{Username: "root", Password: "S3cure!Pass"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	provider.Logout()
	if provider.IsAuthenticated() {
		t.Error("Logout() left an authenticated session")
	}
	if _, ok, _ := store.Load(); ok {
		t.Error("Logout() left a persisted record")
	}

	// a second logout is a no-op, not a failure
	provider.Logout()
	if provider.IsAuthenticated() {
		t.Error("repeated Logout() left an authenticated session")
	}
}

func Test_Provider_hydration(t *testing.T) {
	store, gw := setup(t)
	ident := testutil.NewIdentity(t, "student.banda", identity.RoleStudent)
	if err := store.Save(session.Record{Token: "xyz", Identity: ident}); err != nil {
		t.Fatalf("seeding store failed: %v", err)
	}

	// simulate a fresh process: a new provider over the same store
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	if !provider.IsAuthenticated() {
		t.Fatal("hydration did not restore the session")
	}
	assert.Equal(t, ident, *provider.Identity())
	assert.Equal(t, "xyz", provider.Token())

	// a student-only screen renders without any explicit login call
	if got := access.Authorize(provider.Current(), identity.RoleStudent); got != access.Render {
		t.Errorf("Authorize(STUDENT) = %v; want RENDER", got)
	}
}

func Test_Provider_hydrationUnknownRole(t *testing.T) {
	store, gw := setup(t)
	tampered := identity.Identity{ID: "u-1", Username: "odd", Role: "JANITOR", IsActive: true}
	if err := store.Save(session.Record{Token: "xyz", Identity: tampered}); err != nil {
		t.Fatalf("seeding store failed: %v", err)
	}

	// a persisted record with a role outside the closed set must not come
	// back as an authenticated session
	provider := session.NewProvider(store, gw, testutil.NewLogger())
	if provider.IsAuthenticated() {
		t.Fatal("a record with an unknown role hydrated into an authenticated session")
	}
	if got := access.Authorize(provider.Current()); got != access.RedirectLogin {
		t.Errorf("Authorize() = %v; want REDIRECT_LOGIN", got)
	}
	if got := access.Authorize(provider.Current(), identity.RoleTeacher); got != access.RedirectLogin {
		t.Errorf("Authorize(TEACHER) = %v; want REDIRECT_LOGIN", got)
	}
}

func Test_Provider_hydrationStoreFailure(t *testing.T) {
	_, gw := setup(t)
	store := &failingStore{}
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	// a broken store means a logged-out start, never a crash
	if provider.IsAuthenticated() {
		t.Error("store failure must degrade to an empty session")
	}
	if got := access.Authorize(provider.Current()); got != access.RedirectLogin {
		t.Errorf("Authorize() = %v; want REDIRECT_LOGIN", got)
	}
}

type failingStore struct{}

func (failingStore) Load() (session.Record, bool, error) {
	return session.Record{}, false, errors.New("disk on fire")
}
func (failingStore) Save(session.Record) error { return errors.New("disk on fire") }
func (failingStore) Clear() error              { return errors.New("disk on fire") }

func Test_Provider_updateIdentity(t *testing.T) {
	store, gw := setup(t)
	provider := session.NewProvider(store, gw, testutil.NewLogger())

	// unauthenticated: a no-op
	newName := "Amina"
	if err := provider.UpdateIdentity(identity.Patch{FirstName: &newName}); err != nil {
		t.Fatalf("UpdateIdentity() error = %v; want nil when unauthenticated", err)
	}
	if store.saves != 0 {
		t.Error("UpdateIdentity() wrote to the store while unauthenticated")
	}

	if err := provider.Login(context.Background(), identity.Credentials{Username: "teacher.smith", Password: "S3cure!Pass"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	token := provider.Token()

	if err := provider.UpdateIdentity(identity.Patch{FirstName: &newName}); err != nil {
		t.Fatalf("UpdateIdentity() error = %v", err)
	}
	ident := provider.Identity()
	assert.Equal(t, "Amina", ident.FirstName)
	assert.Equal(t, "teacher.smith", ident.Username) // untouched fields survive
	assert.Equal(t, token, provider.Token())         // token is not part of the patch

	// the merged identity was persisted
	rec, ok, _ := store.Load()
	if !ok {
		t.Fatal("no persisted record after UpdateIdentity()")
	}
	assert.Equal(t, "Amina", rec.Identity.FirstName)
}
