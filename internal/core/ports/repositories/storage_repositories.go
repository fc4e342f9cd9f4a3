package repositories

import (
	"context"
	"time"
)

// KeyValueReader reads client storage entries.
type KeyValueReader interface {
	// Get returns the stored value, or apperrors.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) (string, error)
}

// KeyValueWriter mutates client storage entries.
type KeyValueWriter interface {
	// Set stores value under key. A zero ttl keeps the entry until it is deleted.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// KeyValueStore combines read and write access to a client storage scope.
// It stands in for the browser's session and local storage.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
}
