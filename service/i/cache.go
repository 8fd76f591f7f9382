package i

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by MazeCache.Load when the key holds no value.
var ErrCacheMiss = errors.New("cache miss")

// MazeCache stores serialized maze records with expiry.
type MazeCache interface {
	// Load returns the value stored under key or ErrCacheMiss.
	Load(ctx context.Context, key string) ([]byte, error)

	// Store saves value under key, replacing any previous value.
	Store(ctx context.Context, key string, value []byte) error

	// WithLock runs fn while holding an exclusive lock named after key.
	WithLock(ctx context.Context, key string, fn func(context.Context) error) error
}
