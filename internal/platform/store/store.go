// Package store is the key-value layer behind the webhook correlator. Every
// backend offers plain keys with an optional TTL and a capped list whose push,
// trim and expiry happen as one atomic step.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound    = errors.New("store: key not found")
	ErrUnavailable = errors.New("store: unavailable")
)

type Store interface {
	// Put stores value under key. A zero ttl never expires.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// PushCapped prepends value to the list at key, keeps the newest max
	// entries and resets the TTL of the whole list.
	PushCapped(ctx context.Context, key string, value []byte, max int, ttl time.Duration) error
	// Range returns the list at key newest first, or an empty slice.
	Range(ctx context.Context, key string) ([][]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// Purger is implemented by backends that do not evict expired keys on their own.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

func prepend(items [][]byte, value []byte, max int) [][]byte {
	out := make([][]byte, 0, len(items)+1)
	out = append(out, value)
	out = append(out, items...)
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
