// Package rediscache keeps the latest ranking per job in Redis.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

const keyPrefix = "shortlist:ranking:"

// RankingCache implements domain.RankingCache. Redis failures trip the breaker
// so callers fall back to recomputing without waiting on a dead cache.
type RankingCache struct {
	rdb     redis.UniversalClient
	breaker *observability.CircuitBreaker
}

// New builds a cache over rdb. A nil breaker gets a default one.
func New(rdb redis.UniversalClient, breaker *observability.CircuitBreaker) *RankingCache {
	if breaker == nil {
		breaker = observability.NewCircuitBreaker("ranking_cache", 5, 30*time.Second)
	}
	return &RankingCache{rdb: rdb, breaker: breaker}
}

func key(jobID string) string { return keyPrefix + jobID }

// Get returns the cached ranking; a miss is (zero, false, nil).
func (c *RankingCache) Get(ctx context.Context, jobID string) (domain.Ranking, bool, error) {
	tracer := otel.Tracer("cache.redis")
	ctx, span := tracer.Start(ctx, "ranking_cache.Get")
	defer span.End()

	var raw []byte
	err := c.breaker.Call(func() error {
		b, err := c.rdb.Get(ctx, key(jobID)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		raw = b
		return err
	})
	if err != nil {
		observability.RecordCacheLookup("error")
		return domain.Ranking{}, false, fmt.Errorf("op=ranking_cache.get: %w", err)
	}
	if raw == nil {
		observability.RecordCacheLookup("miss")
		return domain.Ranking{}, false, nil
	}
	var r domain.Ranking
	if err := json.Unmarshal(raw, &r); err != nil {
		observability.RecordCacheLookup("error")
		return domain.Ranking{}, false, fmt.Errorf("op=ranking_cache.decode: %w", err)
	}
	observability.RecordCacheLookup("hit")
	return r, true, nil
}

func (c *RankingCache) Set(ctx context.Context, r domain.Ranking, ttl time.Duration) error {
	tracer := otel.Tracer("cache.redis")
	ctx, span := tracer.Start(ctx, "ranking_cache.Set")
	defer span.End()

	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("op=ranking_cache.encode: %w", err)
	}
	if err := c.breaker.Call(func() error { return c.rdb.Set(ctx, key(r.JobID), raw, ttl).Err() }); err != nil {
		return fmt.Errorf("op=ranking_cache.set: %w", err)
	}
	return nil
}

func (c *RankingCache) Invalidate(ctx context.Context, jobID string) error {
	tracer := otel.Tracer("cache.redis")
	ctx, span := tracer.Start(ctx, "ranking_cache.Invalidate")
	defer span.End()

	if err := c.breaker.Call(func() error { return c.rdb.Del(ctx, key(jobID)).Err() }); err != nil {
		return fmt.Errorf("op=ranking_cache.invalidate: %w", err)
	}
	return nil
}

// Ping is used by the readiness probe.
func (c *RankingCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
