package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("store: key not found")

// Store is the abstract per-key persistence mechanism the workflow core
// writes through. Values are opaque byte strings; the aggregate codec lives
// in Users. Implementations are not required to be safe for concurrent
// writers on the same key: the last writer wins silently, which is a known
// hazard of the single-writer design, not a feature.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
