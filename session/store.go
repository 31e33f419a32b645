package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/data/kv"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/validator"
)

// Store persists the single Session under a well-known key.
type Store struct {
	kv  kv.Store
	key string
	log *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger corrupt records are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore wraps a kv backend.
func NewStore(backend kv.Store, opts ...Option) *Store {
	s := &Store{kv: backend, key: config.DefaultSessionKey, log: logger.StdLogger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens the configured backend and wraps it.
func Open(ctx context.Context, cfg *config.Session, l *logger.Logger) (*Store, error) {
	backend, err := kv.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(backend, WithKey(cfg.Key), WithLogger(l)), nil
}

// Key returns the storage key in use.
func (s *Store) Key() string { return s.key }

// Save validates and writes sess, replacing any prior record.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return errors.New("session: nil session")
	}
	if err := validator.Struct(sess); err != nil {
		return fmt.Errorf("session: invalid record: %w", err)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Load returns the stored session. Missing, unreadable, corrupt and incomplete
// records all read as absent; anything other than a plain miss is logged.
func (s *Store) Load(ctx context.Context) (*Session, bool) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Warnf(ctx, "session: read %s: %v", s.key, err)
		return nil, false
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		s.log.Warnf(ctx, "session: corrupt record under %s: %v", s.key, err)
		return nil, false
	}
	if err := validator.Struct(&sess); err != nil {
		s.log.Warnf(ctx, "session: incomplete record under %s: %v", s.key, err)
		return nil, false
	}
	return &sess, true
}

// Clear removes the stored session. Clearing an empty store succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Token returns the current bearer token, if any.
func (s *Store) Token(ctx context.Context) (string, bool) {
	sess, ok := s.Load(ctx)
	if !ok {
		return "", false
	}
	return sess.Token, true
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}
