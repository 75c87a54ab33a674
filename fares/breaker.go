package fares

import (
	"sync"
	"time"
)

// Breaker defaults for the fare source.
const (
	DefaultFailureThreshold = 5
	DefaultCooldown         = 60 * time.Second
)

// CircuitBreaker tracks consecutive failures against the fare source.
// Below the threshold it is closed. At or above the threshold it is open
// for the cooldown window; once the cooldown elapses it behaves as closed
// again and the next call is a trial attempt. There is no separate
// half-open state.
type CircuitBreaker struct {
	mu          sync.Mutex
	threshold   int
	cooldown    time.Duration
	consecutive int
	lastError   time.Time
	now         func() time.Time
}

// NewCircuitBreaker creates a breaker. Non-positive arguments fall back to
// the defaults.
func NewCircuitBreaker(threshold int, cooldown time.Duration) *CircuitBreaker {
	if threshold <= 0 {
		threshold = DefaultFailureThreshold
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &CircuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a call may be attempted.
func (b *CircuitBreaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.consecutive < b.threshold {
		return true
	}
	return b.lastError.IsZero() || b.now().Sub(b.lastError) >= b.cooldown
}

// RecordSuccess resets the failure counter.
func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consecutive = 0
	b.lastError = time.Time{}
}

// RecordFailure counts one failure and timestamps it.
func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.consecutive++
	b.lastError = b.now()
}

// ConsecutiveFailures returns the current failure streak.
func (b *CircuitBreaker) ConsecutiveFailures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.consecutive
}
