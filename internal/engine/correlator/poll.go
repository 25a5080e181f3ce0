package correlator

import (
	"context"
	"errors"
	"time"

	"idvdemo/internal/platform/models"
)

const (
	DefaultPollAttempts = 90
	DefaultPollInterval = 2 * time.Second
)

var ErrPollExhausted = errors.New("webhook result did not arrive before polling gave up")

// LookupFunc fetches a result and returns ErrNotFound while it is not yet available.
type LookupFunc func(ctx context.Context) (*models.WebhookRecord, error)

// Await polls lookup at a fixed interval. Not-found is the normal waiting state;
// any other error stops polling immediately.
func Await(ctx context.Context, lookup LookupFunc, attempts int, interval time.Duration) (*models.WebhookRecord, error) {
	if attempts <= 0 {
		attempts = DefaultPollAttempts
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i := 0; i < attempts; i++ {
		record, err := lookup(ctx)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
	return nil, ErrPollExhausted
}
