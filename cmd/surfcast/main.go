package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	httpadapter "github.com/Samulko/SurfForcast/internal/adapter/http"
	kafkaadapter "github.com/Samulko/SurfForcast/internal/adapter/kafka"
	"github.com/Samulko/SurfForcast/internal/adapter/windy"
	"github.com/Samulko/SurfForcast/internal/config"
	"github.com/Samulko/SurfForcast/internal/forecast"
	"github.com/Samulko/SurfForcast/internal/observability"
)

func main() {
	// Local development keeps the Windy API key in a .env file; a missing
	// file just means the environment is already populated.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	client := windy.NewClient(cfg, metrics, logger)
	fetcher := windy.NewCachedFetcher(client, cfg.CacheSize, cfg.CacheTTL, clockwork.NewRealClock(), metrics)

	// Archive publishing is feature-flagged via KAFKA_ENABLED.
	var archiver forecast.Archiver
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		archiver = writer
		logger.Info("forecast archive enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("forecast archive disabled")
	}

	sources := forecast.Sources{
		WaveModel:      cfg.WaveModel,
		WaveParameters: forecast.DefaultSources().WaveParameters,
		WindModel:      cfg.WindModel,
		WindParameters: forecast.DefaultSources().WindParameters,
	}
	svc := forecast.New(fetcher, archiver, sources, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
