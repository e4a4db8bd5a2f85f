package session

import "github.com/darasa/console/core/identity"

// Record is the persisted session state: an opaque token and the serialized
// Identity, written and cleared together.
type Record struct {
	Token    string
	Identity identity.Identity
}

// Store persists a single session Record across process restarts.
//
// Implementations live under storage/sessionstore. A Load that finds only one
// of the two underlying entries, or an identity that does not parse, must
// report an empty record rather than an error: a corrupt session is the same
// as no session. Errors are reserved for backend failures (I/O, connectivity).
type Store interface {
	// Load returns the saved record and whether one was present.
	Load() (rec Record, ok bool, err error)
	// Save writes token and identity together.
	Save(rec Record) error
	// Clear removes both entries. Clearing an empty store is a no-op.
	Clear() error
}
