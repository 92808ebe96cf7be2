package resilience

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
)

// ErrBreakerOpen is returned when a call is rejected because the breaker
// tripped. It is not transient; callers degrade to their default.
var ErrBreakerOpen = eris.New("resilience: breaker open")

// Breaker is a minimal circuit breaker for chatty boundary collaborators.
// After Threshold consecutive failures calls are rejected until Cooldown
// elapses; the next allowed call acts as the recovery probe.
type Breaker struct {
	Threshold int
	Cooldown  time.Duration

	mu        sync.Mutex
	failures  int
	openUntil time.Time
}

// NewBreaker creates a breaker with the given consecutive-failure
// threshold and cooldown.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{Threshold: threshold, Cooldown: cooldown}
}

// Allow reports whether a call may proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failures < b.Threshold {
		return true
	}
	if time.Now().After(b.openUntil) {
		// Probe: let one call through; Record decides what happens next.
		b.failures = b.Threshold - 1
		return true
	}
	return false
}

// Record feeds a call outcome back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.Threshold {
		b.openUntil = time.Now().Add(b.Cooldown)
	}
}
