package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"idvdemo/internal/api"
	"idvdemo/internal/api/handlers"
	"idvdemo/internal/api/middleware"
	"idvdemo/internal/engine/correlator"
	"idvdemo/internal/engine/handoff"
	"idvdemo/internal/engine/verification"
	"idvdemo/internal/pkg/logger"
	"idvdemo/internal/platform/audit"
	"idvdemo/internal/platform/config"
	"idvdemo/internal/platform/store"
	"idvdemo/internal/workers"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "Path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.Logging)

	// Store
	kv, err := store.Open(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open store")
	}
	defer kv.Close()

	// Services
	webhookCorrelator := correlator.New(kv, correlator.Options{
		MaxRecords:  cfg.Webhooks.MaxRecords,
		TTL:         cfg.Webhooks.TTL,
		ListKey:     cfg.Webhooks.ListKey,
		IndexPrefix: cfg.Webhooks.IndexPrefix,
	})

	vendorClient := verification.NewClient(cfg.Vendor.BaseURL, cfg.Vendor.APIKeyHeader, &http.Client{Timeout: cfg.Vendor.Timeout})
	verificationSvc := verification.NewService(vendorClient, cfg.Vendor, audit.NewLogger(log.Logger))
	for _, p := range verification.Products() {
		if !verificationSvc.Configured(p) {
			log.Warn().Str("product", string(p)).Msg("no vendor API key configured; requests will return 503")
		}
	}

	// Handlers
	metrics := handlers.NewMetrics()
	rateLimiter := middleware.NewRateLimiter()

	deps := &api.Dependencies{
		WebhookHandler:      handlers.NewWebhookHandler(webhookCorrelator, metrics),
		JobHandler:          handlers.NewJobHandler(webhookCorrelator, metrics),
		VerificationHandler: handlers.NewVerificationHandler(verificationSvc, metrics),
		WidgetHandler:       handlers.NewWidgetHandler(cfg.Vendor),
		HandoffHandler:      handlers.NewHandoffHandler(handoff.NewGenerator(cfg.Handoff.AllowedHosts, cfg.Handoff.DefaultSize)),
		HealthHandler:       handlers.NewHealthHandler(kv),
		MetricsHandler:      handlers.NewMetricsHandler(metrics),
		AdminMiddleware:     middleware.NewAdminMiddleware(cfg.Webhooks.AdminTokenHash),
		RateLimiter:         rateLimiter,
		Webhooks:            cfg.Webhooks,
		RateLimit:           cfg.RateLimit,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewHandler(deps, log.Logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return rateLimiter.Run(gctx)
	})

	if purger, ok := kv.(store.Purger); ok {
		g.Go(func() error {
			return workers.RunPurger(gctx, purger, cfg.Store.PurgeInterval, log.Logger)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
