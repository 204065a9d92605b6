// Package main provides the refresh worker entry point.
// The worker consumes audit events and regenerates cached shortlists
// after criteria changes and new applications.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	rediscache "github.com/fairyhunter13/shortlist-engine/internal/adapter/cache/redis"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/queue/redpanda"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/shortlist-engine/internal/config"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
	"github.com/fairyhunter13/shortlist-engine/internal/engine"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.WorkerMetricsPort), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("worker metrics server error", slog.Any("error", err))
		}
	}()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	slog.Info("starting worker", slog.String("env", cfg.AppEnv))
	if len(cfg.KafkaBrokers) == 0 {
		slog.Error("KAFKA_BROKERS is required for the refresh worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.DBURL, cfg.GetRetryConfig())
	if err != nil {
		slog.Error("database connection failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL", slog.Any("error", err))
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer func() { _ = rdb.Close() }()

	var audit domain.AuditPublisher = redpanda.NopPublisher{}
	producer, err := redpanda.NewAuditProducer(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		slog.Warn("audit producer unavailable; shortlist.generated events will be dropped", slog.Any("error", err))
	} else {
		audit = producer
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := producer.Close(closeCtx); err != nil {
				slog.Error("failed to close audit producer", slog.Any("error", err))
			}
		}()
	}

	ranker := engine.NewRanker(engine.NewScorer(cfg.PartialPassThreshold), cfg.ScoringWorkers)
	shortlist := usecase.NewShortlistService(
		postgres.NewCriteriaRepo(pool),
		postgres.NewApplicationRepo(pool),
		postgres.NewProfileRepo(pool),
		postgres.NewJobRepo(pool),
		rediscache.New(rdb, nil),
		audit,
		ranker,
		cfg.ShortlistCacheTTL,
	)

	consumer, err := redpanda.NewRefreshConsumer(ctx, cfg.KafkaBrokers, cfg.WorkerGroupID, cfg.AuditTopic, shortlist)
	if err != nil {
		slog.Error("refresh consumer init failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer consumer.Close()

	slog.Info("refresh consumer running", slog.String("group", cfg.WorkerGroupID), slog.String("topic", cfg.AuditTopic))
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("refresh consumer stopped", slog.Any("error", err))
	}
	slog.Info("worker stopped")
}
