// Package kv is the persistent key-value layer the session is stored in.
//
// Backends register themselves through Register; "file" and "memory" are built in,
// sqlite and redis live in subpackages and are enabled with a blank import:
//
//	import _ "github.com/ncobase/taskmate/data/kv/sqlite"
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string key-value store.
type Store interface {
	// Get returns the value under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key succeeds.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}
