package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_RejectsMalformedScoringSettings(t *testing.T) {
	tests := map[string]string{
		"PARTIAL_PASS_THRESHOLD": "high",
		"SCORING_WORKERS":        "many",
		"SHORTLIST_CACHE_TTL":    "soon",
		"MAX_IMPORT_KB":          "1.5",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "op=config.Load")
			assert.Contains(t, err.Error(), val)
		})
	}
}

func Test_Load_PassThresholdBoundary(t *testing.T) {
	t.Setenv("PARTIAL_PASS_THRESHOLD", "1")
	t.Setenv("SCORING_WORKERS", "4")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.PartialPassThreshold)
	assert.Equal(t, 4, cfg.ScoringWorkers)
}
