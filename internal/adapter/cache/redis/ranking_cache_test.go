package rediscache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/observability"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

func newTestCache(t *testing.T) (*RankingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, observability.NewCircuitBreaker("test_cache", 2, time.Minute)), mr
}

func sampleRanking() domain.Ranking {
	return domain.Ranking{
		JobID:       "job-1",
		GeneratedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Entries: []domain.ShortlistEntry{{
			ApplicationID:  "a1",
			CandidateID:    "c1",
			Rank:           1,
			ScoreBreakdown: domain.ScoreBreakdown{ApplicationID: "a1", NormalizedScore: 80},
		}},
	}
}

func TestRankingCache_MissThenHit(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleRanking(), time.Minute))
	assert.True(t, mr.Exists("shortlist:ranking:job-1"))
	assert.Equal(t, time.Minute, mr.TTL("shortlist:ranking:job-1"))

	got, ok, err := c.Get(ctx, "job-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleRanking(), got)
}

func TestRankingCache_ExpiresAndInvalidates(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, sampleRanking(), time.Minute))
	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, sampleRanking(), time.Minute))
	require.NoError(t, c.Invalidate(ctx, "job-1"))
	_, ok, _ = c.Get(ctx, "job-1")
	assert.False(t, ok)
}

func TestRankingCache_CorruptPayload(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("shortlist:ranking:job-1", "{not json"))
	_, ok, err := c.Get(context.Background(), "job-1")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestRankingCache_BreakerOpensWhenRedisDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _, err := c.Get(ctx, "job-1")
		require.Error(t, err)
	}
	assert.Equal(t, observability.StateOpen, c.breaker.State())

	err := c.Set(ctx, sampleRanking(), time.Minute)
	assert.ErrorIs(t, err, observability.ErrCircuitOpen)
	assert.Error(t, c.Ping(ctx))
}
