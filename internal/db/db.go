// Package db defines the opaque document store contract consumed by the
// repositories: flat field maps addressed by key, with add/get
// primitives. Query construction and index lifecycle stay with the
// concrete backends.
package db

import (
	"context"
	"time"
)

// Store is the document store facade.
type Store interface {
	Pinger
	// Put stores the flat field map under key, replacing any previous value.
	Put(ctx context.Context, key string, fields map[string]string) error
	// Get returns the flat field map stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (map[string]string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists checks whether key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// Count returns the number of stored documents under the store's prefix.
	Count(ctx context.Context) (int, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
