package circuitbreaker

import (
	"testing"
	"time"
)

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker(3, time.Minute, 1)

	for i := 0; i < 3; i++ {
		if !b.Allow() {
			t.Fatalf("request %d should be allowed while closed", i)
		}
		b.RecordFailure()
	}

	if b.State() != Open {
		t.Fatalf("state = %v, want Open", b.State())
	}
	if b.Allow() {
		t.Fatal("open breaker must reject requests")
	}
}

func TestBreaker_HalfOpenProbeClosesOnSuccess(t *testing.T) {
	b := NewBreaker(1, time.Millisecond, 1)

	b.RecordFailure()
	if b.State() != Open {
		t.Fatalf("state = %v, want Open", b.State())
	}

	time.Sleep(5 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("probe should be allowed after cooldown")
	}
	if b.Allow() {
		t.Fatal("only maxProbes requests may pass while half-open")
	}

	b.RecordSuccess()
	if b.State() != Closed {
		t.Fatalf("state = %v, want Closed", b.State())
	}
}

func TestBreaker_HalfOpenProbeFailureReopens(t *testing.T) {
	b := NewBreaker(1, time.Millisecond, 1)

	b.RecordFailure()
	time.Sleep(5 * time.Millisecond)
	if !b.Allow() {
		t.Fatal("probe should be allowed after cooldown")
	}

	b.RecordFailure()
	if b.State() != Open {
		t.Fatalf("state = %v, want Open", b.State())
	}
}
