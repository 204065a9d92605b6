package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/httpserver"
)

// Pinger is satisfied by *pgxpool.Pool and the audit producer.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessChecks returns the db, redis and (when audit is enabled) kafka checks.
// A nil pool or redis client yields a failing check; a nil kafka pinger is skipped.
func BuildReadinessChecks(pool Pinger, rdb redis.UniversalClient, kafka Pinger) []httpserver.ReadinessCheck {
	checks := []httpserver.ReadinessCheck{
		{Name: "db", Check: func(ctx context.Context) error {
			if pool == nil {
				return fmt.Errorf("db not configured")
			}
			return pool.Ping(ctx)
		}},
		{Name: "redis", Check: func(ctx context.Context) error {
			if rdb == nil {
				return fmt.Errorf("redis not configured")
			}
			return rdb.Ping(ctx).Err()
		}},
	}
	if kafka != nil {
		checks = append(checks, httpserver.ReadinessCheck{Name: "kafka", Check: kafka.Ping})
	}
	return checks
}
