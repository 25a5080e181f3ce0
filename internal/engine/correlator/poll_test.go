package correlator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"idvdemo/internal/platform/models"
)

func TestAwait_ArrivesAfterRetries(t *testing.T) {
	calls := 0
	lookup := func(ctx context.Context) (*models.WebhookRecord, error) {
		calls++
		if calls < 3 {
			return nil, ErrNotFound
		}
		return &models.WebhookRecord{ID: "r1"}, nil
	}

	record, err := Await(context.Background(), lookup, 5, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "r1", record.ID)
	assert.Equal(t, 3, calls)
}

func TestAwait_Exhausted(t *testing.T) {
	calls := 0
	lookup := func(ctx context.Context) (*models.WebhookRecord, error) {
		calls++
		return nil, ErrNotFound
	}

	_, err := Await(context.Background(), lookup, 4, time.Millisecond)
	assert.ErrorIs(t, err, ErrPollExhausted)
	assert.Equal(t, 4, calls)
}

func TestAwait_StopsOnRealError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	lookup := func(ctx context.Context) (*models.WebhookRecord, error) {
		calls++
		return nil, boom
	}

	_, err := Await(context.Background(), lookup, 10, time.Millisecond)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestAwait_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lookup := func(ctx context.Context) (*models.WebhookRecord, error) {
		return nil, ErrNotFound
	}

	_, err := Await(ctx, lookup, 10, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
