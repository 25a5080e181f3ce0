package handlers

import (
	"context"
	"testing"
	"time"

	"idvdemo/internal/engine/correlator"
	"idvdemo/internal/platform/store"
)

// brokenStore fails every operation the way an unreachable backend does.
type brokenStore struct{}

func (brokenStore) Put(context.Context, string, []byte, time.Duration) error {
	return store.ErrUnavailable
}

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, store.ErrUnavailable
}

func (brokenStore) Delete(context.Context, string) error {
	return store.ErrUnavailable
}

func (brokenStore) PushCapped(context.Context, string, []byte, int, time.Duration) error {
	return store.ErrUnavailable
}

func (brokenStore) Range(context.Context, string) ([][]byte, error) {
	return nil, store.ErrUnavailable
}

func (brokenStore) Ping(context.Context) error {
	return store.ErrUnavailable
}

func (brokenStore) Close() error { return nil }

func newMemoryCorrelator(t *testing.T) *correlator.Correlator {
	t.Helper()
	s, err := store.NewMemoryStore(1000)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return correlator.New(s, correlator.Options{})
}
