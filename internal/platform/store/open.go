package store

import (
	"fmt"

	"idvdemo/internal/platform/config"
	"idvdemo/internal/platform/database"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Open builds the backend named by cfg.Driver. The sqlite schema is migrated on open.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemoryStore(cfg.MaxEntries)
	case DriverSQLite:
		db, err := database.Open(cfg.SQLitePath, 0)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		if err := Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLiteStore(db), nil
	case DriverRedis:
		if cfg.URL == "" {
			return nil, fmt.Errorf("store.url is required for the redis driver")
		}
		client, err := NewRedisClient(cfg.URL, cfg.Token.RawString())
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
