// Package circuitbreaker guards hot-path lookups against a dead dependency.
// The presence filter runs one store read per recipient; when Redis is
// down we want a fast local "no" instead of a timeout multiplied by the
// recipient count.
package circuitbreaker

import (
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

// Breaker trips open after a run of failures and lets a bounded number of
// probe requests through once the cooldown has passed.
type Breaker struct {
	mu        sync.Mutex
	state     State
	failures  int
	threshold int
	cooldown  time.Duration
	maxProbes int

	lastFailure time.Time
	probes      int
}

func NewBreaker(threshold int, cooldown time.Duration, maxProbes int) *Breaker {
	return &Breaker{
		state:     Closed,
		threshold: threshold,
		cooldown:  cooldown,
		maxProbes: maxProbes,
	}
}

// Allow reports whether the caller may attempt the request.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		if time.Since(b.lastFailure) > b.cooldown {
			b.state = HalfOpen
			b.probes = 1
			return true
		}
		return false
	case HalfOpen:
		if b.probes >= b.maxProbes {
			return false
		}
		b.probes++
		return true
	default:
		return true
	}
}

// RecordSuccess resets the failure run; a successful probe closes the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	if b.state == HalfOpen {
		b.state = Closed
	}
}

// RecordFailure counts a failure; crossing the threshold, or failing a
// probe, opens the circuit.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = time.Now()

	switch b.state {
	case Closed:
		if b.failures >= b.threshold {
			b.state = Open
		}
	case HalfOpen:
		b.state = Open
	}
}

// State returns the current circuit breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
