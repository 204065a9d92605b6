// Command server starts the shortlist engine HTTP API.
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

	"github.com/redis/go-redis/v9"

	rediscache "github.com/fairyhunter13/shortlist-engine/internal/adapter/cache/redis"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/httpserver"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/queue/redpanda"
	"github.com/fairyhunter13/shortlist-engine/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/shortlist-engine/internal/app"
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

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	ctx := context.Background()
	pool, err := postgres.Connect(ctx, cfg.DBURL, cfg.GetRetryConfig())
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		slog.Error("schema bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}

	settingsRepo := postgres.NewFieldSettingRepo(pool)
	criteriaRepo := postgres.NewCriteriaRepo(pool)
	appRepo := postgres.NewApplicationRepo(pool)
	profileRepo := postgres.NewProfileRepo(pool)
	jobRepo := postgres.NewJobRepo(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL", slog.Any("error", err))
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer func() { _ = rdb.Close() }()
	cache := rediscache.New(rdb, nil)

	// audit is best effort: without brokers events are dropped
	var audit domain.AuditPublisher = redpanda.NopPublisher{}
	var kafkaCheck app.Pinger
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := redpanda.NewAuditProducer(ctx, cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			slog.Warn("audit producer unavailable; events will be dropped", slog.Any("error", err))
		} else {
			audit, kafkaCheck = producer, producer
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := producer.Close(closeCtx); err != nil {
					slog.Error("failed to close audit producer", slog.Any("error", err))
				}
			}()
		}
	}

	fieldSettings := usecase.NewFieldSettingsService(settingsRepo, audit)
	if err := seedFieldSettings(ctx, fieldSettings, cfg.FieldSettingsSeedFile); err != nil {
		slog.Error("field settings seed failed", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.DevFixturesFile != "" {
		if !cfg.IsDev() {
			slog.Warn("DEV_FIXTURES_FILE ignored outside dev", slog.String("env", cfg.AppEnv))
		} else if err := seedDevFixtures(ctx, jobRepo, profileRepo, cfg.DevFixturesFile); err != nil {
			slog.Error("dev fixtures seed failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	completion := usecase.NewCompletionService(settingsRepo, profileRepo)
	applications := usecase.NewApplicationService(completion, appRepo, jobRepo, cache, audit)
	criteria := usecase.NewCriteriaService(criteriaRepo, cache, audit, int(cfg.MaxImportKB*1024))
	ranker := engine.NewRanker(engine.NewScorer(cfg.PartialPassThreshold), cfg.ScoringWorkers)
	shortlist := usecase.NewShortlistService(criteriaRepo, appRepo, profileRepo, jobRepo, cache, audit, ranker, cfg.ShortlistCacheTTL)

	if !cfg.AdminEnabled() {
		slog.Warn("admin credentials not configured; admin routes are open", slog.String("env", cfg.AppEnv))
	}
	srv := httpserver.NewServer(cfg, fieldSettings, completion, applications, criteria, shortlist,
		app.BuildReadinessChecks(pool, rdb, kafkaCheck)...)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
