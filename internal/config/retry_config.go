package config

import (
	"time"
)

// RetryConfig shapes the exponential backoff used for startup dependencies.
type RetryConfig struct {
	// InitialDelay is the initial delay before first retry
	InitialDelay time.Duration
	// MaxDelay is the maximum delay between retries
	MaxDelay time.Duration
	// MaxElapsed stops retrying altogether
	MaxElapsed time.Duration
	// Multiplier is the exponential backoff multiplier
	Multiplier float64
}

// GetRetryConfig returns the retry configuration.
// In test environments, uses much shorter timeouts for faster test execution.
func (c Config) GetRetryConfig() RetryConfig {
	if c.IsTest() {
		return RetryConfig{InitialDelay: 10 * time.Millisecond, MaxDelay: 100 * time.Millisecond, MaxElapsed: time.Second, Multiplier: 2}
	}
	return RetryConfig{
		InitialDelay: c.RetryInitialDelay,
		MaxDelay:     c.RetryMaxDelay,
		MaxElapsed:   c.DBConnectMaxElapsed,
		Multiplier:   c.RetryMultiplier,
	}
}
