package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_And_AdminEnabled(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD_HASH", "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.AdminEnabled())
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.IsProd())

	require.NoError(t, os.Unsetenv("ADMIN_PASSWORD_HASH"))
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.AdminEnabled())
}

func Test_Load_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsTest())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "shortlist-audit", cfg.AuditTopic)
	assert.Equal(t, 15*time.Minute, cfg.ShortlistCacheTTL)
	assert.Equal(t, 0.6, cfg.PartialPassThreshold)
	assert.Equal(t, 0, cfg.ScoringWorkers)
	assert.Equal(t, "shortlist-engine", cfg.OTELServiceName)
}

func Test_Load_RejectsPassThresholdOutOfRange(t *testing.T) {
	for _, v := range []string{"0", "1.5", "-0.1"} {
		t.Setenv("PARTIAL_PASS_THRESHOLD", v)
		_, err := Load()
		assert.Error(t, err, v)
	}
}

func Test_Load_RejectsNegativeWorkers(t *testing.T) {
	t.Setenv("SCORING_WORKERS", "-2")
	_, err := Load()
	assert.Error(t, err)
}

func Test_GetRetryConfig(t *testing.T) {
	cfg := Config{AppEnv: "prod", RetryInitialDelay: time.Second, RetryMaxDelay: 5 * time.Second, DBConnectMaxElapsed: time.Minute, RetryMultiplier: 1.5}
	rc := cfg.GetRetryConfig()
	assert.Equal(t, RetryConfig{InitialDelay: time.Second, MaxDelay: 5 * time.Second, MaxElapsed: time.Minute, Multiplier: 1.5}, rc)

	cfg.AppEnv = "test"
	assert.Equal(t, time.Second, cfg.GetRetryConfig().MaxElapsed)
}
