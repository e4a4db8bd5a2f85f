package redisstore

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/session"
	testutil "github.com/darasa/console/tests"
)

func openStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client, "test"), mr
}

func Test_Store_roundTrip(t *testing.T) {
	store, _ := openStore(t)

	if _, ok, err := store.Load(); ok || err != nil {
		t.Fatalf("Load() on empty store = (%v, %v); want (false, nil)", ok, err)
	}

	rec := session.Record{Token: "tok-123", Identity: testutil.NewIdentity(t, "teacher.smith", identity.RoleTeacher)}
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("Load() = (%v, %v); want a record", ok, err)
	}
	assert.Equal(t, rec, got)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, err := store.Load(); ok || err != nil {
		t.Errorf("Load() after Clear() = (%v, %v); want (false, nil)", ok, err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("repeated Clear() error = %v; want nil", err)
	}
}

func Test_Store_keysScopedByInstall(t *testing.T) {
	store, mr := openStore(t)

	rec := session.Record{Token: "tok", Identity: testutil.NewIdentity(t, "root", identity.RoleSuperAdmin)}
	if err := store.Save(rec); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !mr.Exists("console:test:session:token") || !mr.Exists("console:test:session:identity") {
		t.Errorf("keys = %v; want install-scoped token and identity keys", mr.Keys())
	}

	// a second install on the same Redis sees nothing
	other := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "other")
	if _, ok, err := other.Load(); ok || err != nil {
		t.Errorf("other install Load() = (%v, %v); want (false, nil)", ok, err)
	}
}

func Test_Store_reconciliation(t *testing.T) {
	ident := `{"id":"u-1","username":"x","role":"TEACHER","is_active":true}`

	tests := []struct {
		name string
		keys map[string]string
	}{
		{name: "token without identity", keys: map[string]string{"console:test:session:token": "tok"}},
		{name: "identity without token", keys: map[string]string{"console:test:session:identity": ident}},
		{name: "empty token", keys: map[string]string{"console:test:session:token": "", "console:test:session:identity": ident}},
		{name: "corrupt identity", keys: map[string]string{"console:test:session:token": "tok", "console:test:session:identity": "{not json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mr := openStore(t)
			for key, val := range tt.keys {
				if err := mr.Set(key, val); err != nil {
					t.Fatalf("seeding %s failed: %v", key, err)
				}
			}
			if rec, ok, err := store.Load(); ok || err != nil {
				t.Errorf("Load() = (%+v, %v, %v); want (zero, false, nil)", rec, ok, err)
			}
		})
	}
}

func Test_Store_backendFailure(t *testing.T) {
	store, mr := openStore(t)
	mr.Close()

	if _, _, err := store.Load(); err == nil {
		t.Error("Load() with Redis down = nil error; want a backend error")
	}
	rec := session.Record{Token: "tok", Identity: testutil.NewIdentity(t, "root", identity.RoleSuperAdmin)}
	if err := store.Save(rec); err == nil {
		t.Error("Save() with Redis down = nil error; want a backend error")
	}
}
