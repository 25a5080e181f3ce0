package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"idvdemo/internal/platform/store"
)

// PurgeExpired deletes expired entries once and returns how many were removed.
func PurgeExpired(ctx context.Context, p store.Purger, log zerolog.Logger) (int64, error) {
	n, err := p.PurgeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("purge of expired store entries failed")
		return 0, err
	}
	if n > 0 {
		log.Info().Int64("removed", n).Msg("purged expired store entries")
	}
	return n, nil
}

// RunPurger purges on every tick until ctx is cancelled. Failed runs are
// logged and retried on the next tick.
func RunPurger(ctx context.Context, p store.Purger, interval time.Duration, log zerolog.Logger) error {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info().Dur("interval", interval).Msg("purge worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("purge worker stopped")
			return nil
		case <-ticker.C:
			PurgeExpired(ctx, p, log)
		}
	}
}
