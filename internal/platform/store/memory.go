package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Yiling-J/theine-go"
)

const defaultMemoryEntries = 10000

var errCacheRejected = errors.New("cache rejected entry")

type memoryEntry struct {
	value     []byte
	items     [][]byte
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is process-local. It serves a single instance or tests; state is lost on restart.
type MemoryStore struct {
	cache *theine.Cache[string, *memoryEntry]
	// mu serializes read-modify-write list updates
	mu  sync.Mutex
	now func() time.Time
}

func NewMemoryStore(maxEntries int64) (*MemoryStore, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMemoryEntries
	}
	cache, err := theine.NewBuilder[string, *memoryEntry](maxEntries).Build()
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: cache, now: time.Now}, nil
}

func (m *MemoryStore) set(key string, e *memoryEntry, ttl time.Duration) error {
	var ok bool
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
		ok = m.cache.SetWithTTL(key, e, 1, ttl)
	} else {
		ok = m.cache.Set(key, e, 1)
	}
	if !ok {
		return unavailable("set", errCacheRejected)
	}
	return nil
}

func (m *MemoryStore) lookup(key string) (*memoryEntry, bool) {
	e, ok := m.cache.Get(key)
	if !ok {
		return nil, false
	}
	if e.expired(m.now()) {
		m.cache.Delete(key)
		return nil, false
	}
	return e, true
}

func (m *MemoryStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.set(key, &memoryEntry{value: clone(value)}, ttl)
}

func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	e, ok := m.lookup(key)
	if !ok || e.value == nil {
		return nil, ErrNotFound
	}
	return clone(e.value), nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *MemoryStore) PushCapped(ctx context.Context, key string, value []byte, max int, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items [][]byte
	if e, ok := m.lookup(key); ok {
		items = e.items
	}
	return m.set(key, &memoryEntry{items: prepend(items, clone(value), max)}, ttl)
}

func (m *MemoryStore) Range(ctx context.Context, key string) ([][]byte, error) {
	e, ok := m.lookup(key)
	if !ok {
		return [][]byte{}, nil
	}
	out := make([][]byte, len(e.items))
	for i, item := range e.items {
		out[i] = clone(item)
	}
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close() error {
	m.cache.Close()
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
