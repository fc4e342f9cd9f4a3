package storage

import (
	"context"
	"time"

	"github.com/SscSPs/invest_portal/internal/core/ports/repositories"
)

// ScopedStore prefixes every key so several profiles can share one backing store.
// A non-zero defaultTTL is applied to writes that do not set their own.
type ScopedStore struct {
	inner      repositories.KeyValueStore
	prefix     string
	defaultTTL time.Duration
}

// Scope wraps inner with "<prefix>/" keys.
func Scope(inner repositories.KeyValueStore, prefix string, defaultTTL time.Duration) *ScopedStore {
	return &ScopedStore{inner: inner, prefix: prefix + "/", defaultTTL: defaultTTL}
}

func (s *ScopedStore) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *ScopedStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.defaultTTL
	}
	return s.inner.Set(ctx, s.prefix+key, value, ttl)
}

func (s *ScopedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}
