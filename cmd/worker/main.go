package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"idvdemo/internal/pkg/logger"
	"idvdemo/internal/platform/config"
	"idvdemo/internal/platform/database"
	"idvdemo/internal/platform/store"
	"idvdemo/internal/workers"
)

// The worker purges expired rows from a sqlite store shared by several
// server processes, so the servers can run without their own purge loop.
func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the config file")
	once := flag.Bool("once", false, "Purge once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.Logging)

	db, err := database.Open(cfg.Store.SQLitePath, 1)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Store.SQLitePath).Msg("failed to open sqlite store")
	}
	if err := store.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate sqlite store")
	}
	s := store.NewSQLiteStore(db)
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if _, err := workers.PurgeExpired(ctx, s, log.Logger); err != nil {
			os.Exit(1)
		}
		return
	}

	if err := workers.RunPurger(ctx, s, cfg.Store.PurgeInterval, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("purge worker failed")
	}
}
