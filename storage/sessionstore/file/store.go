package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/session"
)

const (
	tokenFile    = "token"
	identityFile = "identity.json"

	fileMode = os.FileMode(0600)
	dirMode  = os.FileMode(0700)
)

// Store persists the session as two records in a per-install directory: the
// opaque token and the serialized identity. That mirrors the two independent
// entries browsers keep in local storage; Load reconciles the pair so a
// half-written session reads as no session.
type Store struct {
	dir string
}

var _ session.Store = (*Store)(nil)

func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, errors.Wrap(err, "creating session dir")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Load() (session.Record, bool, error) {
	token, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if os.IsNotExist(err) {
		return session.Record{}, false, nil
	}
	if err != nil {
		return session.Record{}, false, errors.Wrap(err, "reading token")
	}

	data, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if os.IsNotExist(err) {
		// token without identity: treat as no session
		return session.Record{}, false, nil
	}
	if err != nil {
		return session.Record{}, false, errors.Wrap(err, "reading identity")
	}

	var ident identity.Identity
	if err := json.Unmarshal(data, &ident); err != nil {
		// corrupt identity record: same as no session
		return session.Record{}, false, nil
	}
	if len(token) == 0 {
		return session.Record{}, false, nil
	}
	return session.Record{Token: string(token), Identity: ident}, true, nil
}

func (s *Store) Save(rec session.Record) error {
	data, err := json.Marshal(rec.Identity)
	if err != nil {
		return errors.Wrap(err, "serializing identity")
	}
	// identity first so a crash between the two writes leaves a token-less
	// identity, which Load treats as no session
	if err := writeFile(filepath.Join(s.dir, identityFile), data); err != nil {
		return errors.Wrap(err, "writing identity")
	}
	if err := writeFile(filepath.Join(s.dir, tokenFile), []byte(rec.Token)); err != nil {
		return errors.Wrap(err, "writing token")
	}
	return nil
}

func (s *Store) Clear() error {
	// token first: without it the remaining identity is already dead
	if err := removeFile(filepath.Join(s.dir, tokenFile)); err != nil {
		return errors.Wrap(err, "removing token")
	}
	if err := removeFile(filepath.Join(s.dir, identityFile)); err != nil {
		return errors.Wrap(err, "removing identity")
	}
	return nil
}

// writeFile writes via a temp file + rename so readers never observe a
// partial record.
func writeFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
