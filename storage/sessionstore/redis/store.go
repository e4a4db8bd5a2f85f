package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/darasa/console/core/identity"
	"github.com/darasa/console/core/session"
)

const opTimeout = 5 * time.Second

// Store persists the session in Redis, for console deployments that share a
// kiosk backend. Token and identity live under two keys written in a single
// pipeline; a missing or unparseable half reads as no session.
type Store struct {
	client *redis.Client

	tokenKey    string
	identityKey string
}

var _ session.Store = (*Store)(nil)

// Open connects to Redis at the given URL (redis://...). The install name
// scopes the keys so several consoles can share one Redis.
func Open(url, install string) (*Store, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis url")
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "pinging redis")
	}

	if install == "" {
		install = "default"
	}
	return &Store{
		client:      client,
		tokenKey:    "console:" + install + ":session:token",
		identityKey: "console:" + install + ":session:identity",
	}, nil
}

func NewWithClient(client *redis.Client, install string) *Store {
	return &Store{
		client:      client,
		tokenKey:    "console:" + install + ":session:token",
		identityKey: "console:" + install + ":session:identity",
	}
}

func (s *Store) Load() (session.Record, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	vals, err := s.client.MGet(ctx, s.tokenKey, s.identityKey).Result()
	if err != nil {
		return session.Record{}, false, errors.Wrap(err, "reading session keys")
	}
	token, tokOK := vals[0].(string)
	rawIdent, idOK := vals[1].(string)
	if !tokOK || !idOK || token == "" {
		// one half missing: no session
		return session.Record{}, false, nil
	}

	var ident identity.Identity
	if err := json.Unmarshal([]byte(rawIdent), &ident); err != nil {
		return session.Record{}, false, nil
	}
	return session.Record{Token: token, Identity: ident}, true, nil
}

func (s *Store) Save(rec session.Record) error {
	data, err := json.Marshal(rec.Identity)
	if err != nil {
		return errors.Wrap(err, "serializing identity")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey, rec.Token, 0)
	pipe.Set(ctx, s.identityKey, data, 0)
	_, err = pipe.Exec(ctx)
	return errors.Wrap(err, "writing session keys")
}

func (s *Store) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return errors.Wrap(s.client.Del(ctx, s.tokenKey, s.identityKey).Err(), "deleting session keys")
}
