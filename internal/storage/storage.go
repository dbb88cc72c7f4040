// Package storage provides the persistent key-value store the progression
// engine is built on.
//
// The engine keeps all of its durable state as opaque JSON text under string
// keys: the activity log, the per-user earned-badge lists, the daily-title
// map, and per-user join-date markers. Serialization is owned by the
// repository layer; this package only moves strings.
//
// # Implementations
//
//   - SurrealStore: durable, backed by a single SurrealDB table
//   - MemoryStore: in-process map, used in tests and local development
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: the key has never been written
//   - ErrConnection: backing store unreachable
//   - ErrQuery: a read or write failed at the store
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, storage.ErrNotFound) {
//	    // treat as an empty collection
//	}
package storage

import (
	"context"
	"errors"
)

// Standard errors for store operations.
var (
	// ErrNotFound indicates the key has no value.
	ErrNotFound = errors.New("key not found")

	// ErrConnection indicates the backing store is unreachable.
	ErrConnection = errors.New("store connection failed")

	// ErrQuery indicates a read or write failed at the store.
	ErrQuery = errors.New("store operation failed")
)

// Store is the key-value collaborator contract. Values are opaque JSON text;
// callers own serialization. Get returns ErrNotFound for keys that have
// never been written.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
