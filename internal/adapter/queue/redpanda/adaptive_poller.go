package redpanda

import (
	"math"
	"sync"
	"time"
)

// AdaptivePoller spaces out retries after failed polls and snaps back to
// the base interval once polls succeed again.
type AdaptivePoller struct {
	mu                 sync.Mutex
	base               time.Duration
	max                time.Duration
	factor             float64
	consecutiveFailure int
}

func NewAdaptivePoller(base time.Duration) *AdaptivePoller {
	return &AdaptivePoller{base: base, max: 10 * time.Second, factor: 2}
}

// NextInterval is base*factor^(failures-1), capped at max; base when healthy.
func (p *AdaptivePoller) NextInterval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.consecutiveFailure == 0 {
		return p.base
	}
	d := float64(p.base) * math.Pow(p.factor, float64(p.consecutiveFailure-1))
	if d > float64(p.max) {
		return p.max
	}
	return time.Duration(d)
}

func (p *AdaptivePoller) RecordSuccess() {
	p.mu.Lock()
	p.consecutiveFailure = 0
	p.mu.Unlock()
}

func (p *AdaptivePoller) RecordFailure() {
	p.mu.Lock()
	p.consecutiveFailure++
	p.mu.Unlock()
}

func (p *AdaptivePoller) IsHealthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consecutiveFailure == 0
}
