// Package redisrepo persists the session record in Redis, giving every
// process that shares the store the same session — the shared-storage
// scope, where a login in one place is visible everywhere.
package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	interrors "github.com/jrsteele09/go-commerce-client/internal/errors"
	"github.com/jrsteele09/go-commerce-client/session"
)

const (
	defaultOpTimeout = 3 * time.Second
	recordKey        = "commerce.session"
)

var _ session.Repo = (*RedisRepo)(nil)

type RedisRepo struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
	opTimeout time.Duration
}

// Option defines a function type to modify the RedisRepo instance.
type Option func(*RedisRepo)

// WithTTL expires the persisted record after d. Zero means no expiry;
// the session then lives until ClearSession or an overwrite.
func WithTTL(d time.Duration) Option {
	return func(r *RedisRepo) {
		r.ttl = d
	}
}

// WithOpTimeout bounds each Redis round trip.
func WithOpTimeout(d time.Duration) Option {
	return func(r *RedisRepo) {
		r.opTimeout = d
	}
}

// New creates a Redis-backed session repo. namespace distinguishes
// independent clients sharing one Redis (e.g. "admin" vs "storefront").
func New(client *redis.Client, namespace string, options ...Option) (*RedisRepo, error) {
	if client == nil {
		return nil, errors.New("[redisrepo.New] client is required")
	}
	if namespace == "" {
		return nil, errors.New("[redisrepo.New] namespace is required")
	}

	repo := &RedisRepo{
		client:    client,
		namespace: namespace,
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range options {
		opt(repo)
	}
	return repo, nil
}

func (r *RedisRepo) key() string {
	return r.namespace + ":" + recordKey
}

func (r *RedisRepo) Load() (*session.Data, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	raw, err := r.client.Get(ctx, r.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interrors.ErrNoSession
	}
	if err != nil {
		return nil, interrors.Wrapf(interrors.ErrSessionStorage, "redis get: %v", err)
	}

	var data session.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, interrors.Wrapf(interrors.ErrSessionCorrupted, "decode session record: %v", err)
	}
	return &data, nil
}

func (r *RedisRepo) Save(data *session.Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return interrors.Wrapf(interrors.ErrSessionStorage, "encode session: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(), raw, r.ttl).Err(); err != nil {
		return interrors.Wrapf(interrors.ErrSessionStorage, "redis set: %v", err)
	}
	return nil
}

func (r *RedisRepo) Delete() error {
	ctx, cancel := context.WithTimeout(context.Background(), r.opTimeout)
	defer cancel()

	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		return interrors.Wrapf(interrors.ErrSessionStorage, "redis del: %v", err)
	}
	return nil
}
