package sqlxstore

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/session"
)

const (
	keyToken    = "token"
	keyIdentity = "identity"

	schema = `
CREATE TABLE IF NOT EXISTS session_record (
    install TEXT    NOT NULL,
    key     TEXT    NOT NULL,
    value   TEXT    NOT NULL,
    PRIMARY KEY (install, key)
);`
)

// Store persists the session in Postgres, for console deployments that
// already carry a database. Each install owns two rows (token, identity);
// Save replaces both in one transaction.
type Store struct {
	db      *sqlx.DB
	install string
}

var _ session.Store = (*Store)(nil)

func Open(databaseURL, install string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if install == "" {
		install = "default"
	}
	return New(db, install)
}

func New(db *sqlx.DB, install string) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "bootstrapping session_record table")
	}
	return &Store{db: db, install: install}, nil
}

func (s *Store) Load() (session.Record, bool, error) {
	var token string
	err := s.db.Get(&token, `SELECT value FROM session_record WHERE install = $1 AND key = $2`, s.install, keyToken)
	if err == sql.ErrNoRows {
		return session.Record{}, false, nil
	}
	if err != nil {
		return session.Record{}, false, errors.Wrap(err, "reading token row")
	}

	var rawIdent string
	err = s.db.Get(&rawIdent, `SELECT value FROM session_record WHERE install = $1 AND key = $2`, s.install, keyIdentity)
	if err == sql.ErrNoRows {
		return session.Record{}, false, nil
	}
	if err != nil {
		return session.Record{}, false, errors.Wrap(err, "reading identity row")
	}

	var ident identity.Identity
	if err := json.Unmarshal([]byte(rawIdent), &ident); err != nil {
		return session.Record{}, false, nil
	}
	if token == "" {
		return session.Record{}, false, nil
	}
	return session.Record{Token: token, Identity: ident}, true, nil
}

func (s *Store) Save(rec session.Record) error {
	data, err := json.Marshal(rec.Identity)
	if err != nil {
		return errors.Wrap(err, "serializing identity")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	defer tx.Rollback() //nolint:errcheck

	upsert := `
INSERT INTO session_record (install, key, value) VALUES ($1, $2, $3)
ON CONFLICT (install, key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := tx.Exec(upsert, s.install, keyToken, rec.Token); err != nil {
		return errors.Wrap(err, "writing token row")
	}
	if _, err := tx.Exec(upsert, s.install, keyIdentity, string(data)); err != nil {
		return errors.Wrap(err, "writing identity row")
	}
	return errors.Wrap(tx.Commit(), "committing session write")
}

func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session_record WHERE install = $1`, s.install)
	return errors.Wrap(err, "deleting session rows")
}
