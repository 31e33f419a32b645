// Package redis provides a Redis backend for the kv store, for sharing one
// session between several machines. It registers itself when imported:
//
//	import _ "github.com/ncobase/taskmate/data/kv/redis"
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/data/kv"
	"github.com/redis/go-redis/v9"
)

type driver struct{}

func (d *driver) Name() string {
	return "redis"
}

func (d *driver) Open(ctx context.Context, cfg *config.Session) (kv.Store, error) {
	rc := cfg.Redis
	if rc == nil || rc.Addr == "" {
		return nil, fmt.Errorf("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     rc.Addr,
		Username: rc.Username,
		Password: rc.Password,
		DB:       rc.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to ping server: %w", err)
	}

	return New(client, rc.Prefix), nil
}

// Store is a kv.Store over a redis client. Keys are namespaced with prefix.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// New wraps an existing client.
func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string { return s.prefix + k }

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis: get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value without expiry; the session lives until logout.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis: failed to close connection: %w", err)
	}
	return nil
}

func init() {
	kv.Register(&driver{})
}
