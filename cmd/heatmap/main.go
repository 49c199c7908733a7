package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/season-heatmap-service/internal/adapter/csvsource"
	"github.com/couchcryptid/season-heatmap-service/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/season-heatmap-service/internal/adapter/kafka"
	"github.com/couchcryptid/season-heatmap-service/internal/config"
	"github.com/couchcryptid/season-heatmap-service/internal/observability"
	"github.com/couchcryptid/season-heatmap-service/internal/pipeline"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	source := csvsource.NewClient(cfg.DataURL, cfg.FetchTimeout, uint(cfg.FetchRetries)+1, metrics, logger)

	opts := pipeline.Options{
		Layout:    cfg.Layout,
		HostPage:  cfg.HostPage,
		CacheSize: cfg.RenderCacheSize,
	}

	// Top-season publishing is feature-flagged via PUBLISH_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.PublishEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts.Publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka publishing disabled")
	}

	svc, err := pipeline.New(source, opts, logger, metrics)
	if err != nil {
		logger.Error("failed to create pipeline", "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return svc.Run(gctx, cfg.RefreshInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
