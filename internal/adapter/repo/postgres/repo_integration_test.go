//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/shortlist-engine/internal/config"
	"github.com/fairyhunter13/shortlist-engine/internal/domain"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16",
		Env:          map[string]string{"POSTGRES_PASSWORD": "postgres", "POSTGRES_USER": "postgres", "POSTGRES_DB": "app"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(90 * time.Second),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })
	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432")
	require.NoError(t, err)
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/app?sslmode=disable", host, port.Port())
}

func TestRepos_RoundTrip(t *testing.T) {
	ctx := context.Background()
	rc := config.RetryConfig{InitialDelay: 200 * time.Millisecond, MaxDelay: time.Second, MaxElapsed: 30 * time.Second, Multiplier: 2}
	pool, err := postgres.Connect(ctx, startPostgres(t), rc)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))

	settings := postgres.NewFieldSettingRepo(pool)
	n, err := settings.Seed(ctx, domain.DefaultFieldSettings())
	require.NoError(t, err)
	assert.Equal(t, len(domain.FieldCatalog()), n)
	n, err = settings.Seed(ctx, domain.DefaultFieldSettings())
	require.NoError(t, err)
	assert.Zero(t, n, "reseeding keeps existing rows")

	require.NoError(t, settings.BulkUpdate(ctx, []domain.ProfileFieldSetting{{ID: "pfs-email", IsVisible: false, IsRequired: true}}))
	list, err := settings.List(ctx)
	require.NoError(t, err)
	for _, s := range list {
		if s.FieldName == "email" {
			assert.False(t, s.IsVisible)
			assert.False(t, s.IsRequired)
		}
	}
	assert.ErrorIs(t, settings.BulkUpdate(ctx, []domain.ProfileFieldSetting{{ID: "pfs-nope"}}), domain.ErrNotFound)

	require.NoError(t, postgres.NewJobRepo(pool).Upsert(ctx, domain.JobPosting{ID: "job-1", Title: "Engineer"}))
	profiles := postgres.NewProfileRepo(pool)
	require.NoError(t, profiles.Upsert(ctx, domain.CandidateProfileSnapshot{CandidateID: "c1", FirstName: "Ada"}))
	p, err := profiles.GetProfile(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FirstName)
	assert.False(t, p.CapturedAt.IsZero())

	apps := postgres.NewApplicationRepo(pool)
	_, err = apps.Create(ctx, domain.Application{JobID: "job-1", CandidateID: "c1"})
	require.NoError(t, err)
	_, err = apps.Create(ctx, domain.Application{JobID: "job-1", CandidateID: "c1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	ok, err := apps.Exists(ctx, "job-1", "c1")
	require.NoError(t, err)
	assert.True(t, ok)

	criteria := postgres.NewCriteriaRepo(pool)
	_, err = criteria.Get(ctx, "job-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, criteria.Replace(ctx, domain.CriteriaSet{JobID: "job-1", Rules: []domain.CriteriaRule{{ID: "r1", FieldKey: "resume", RuleType: domain.RulePresence, Weight: 1}}}))
	set, err := criteria.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Len(t, set.Rules, 1)
}
