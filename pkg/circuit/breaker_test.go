package circuit

import (
	"errors"
	"testing"
	"time"
)

var errRelayDown = errors.New("relay down")

func newTestBreaker(config Config) *Breaker {
	return NewBreaker("test", config, nil)
}

func failUntilOpen(b *Breaker, threshold int) {
	for i := 0; i < threshold; i++ {
		b.Execute(func() error { return errRelayDown })
	}
}

func TestBreakerStartsClosed(t *testing.T) {
	b := newTestBreaker(DefaultConfig())

	if b.State() != StateClosed {
		t.Errorf("Expected state CLOSED, got %s", b.State())
	}
	if b.IsOpen() {
		t.Error("Expected IsOpen to be false for a new breaker")
	}
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 3
	b := newTestBreaker(config)

	failUntilOpen(b, 2)
	if b.State() != StateClosed {
		t.Errorf("Expected state CLOSED below threshold, got %s", b.State())
	}

	b.Execute(func() error { return errRelayDown })
	if b.State() != StateOpen {
		t.Errorf("Expected state OPEN at threshold, got %s", b.State())
	}
}

func TestBreakerFailsFastWhenOpen(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 1
	config.Timeout = time.Hour
	b := newTestBreaker(config)

	failUntilOpen(b, 1)

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})

	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Expected ErrCircuitOpen, got %v", err)
	}
	if called {
		t.Error("Expected the wrapped function to be skipped while open")
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 3
	b := newTestBreaker(config)

	failUntilOpen(b, 2)
	b.Execute(func() error { return nil })
	failUntilOpen(b, 2)

	if b.State() != StateClosed {
		t.Errorf("Expected state CLOSED after interleaved success, got %s", b.State())
	}
}

func TestBreakerHalfOpenAfterTimeout(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 1
	config.Timeout = 10 * time.Millisecond
	b := newTestBreaker(config)

	failUntilOpen(b, 1)
	time.Sleep(20 * time.Millisecond)

	if err := b.Allow(); err != nil {
		t.Fatalf("Expected probe to be admitted after timeout, got %v", err)
	}
	if b.State() != StateHalfOpen {
		t.Errorf("Expected state HALF_OPEN, got %s", b.State())
	}
}

func TestBreakerClosesAfterSuccessThreshold(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 1
	config.Timeout = time.Millisecond
	config.SuccessThreshold = 2
	config.MaxHalfOpen = 5
	b := newTestBreaker(config)

	failUntilOpen(b, 1)
	time.Sleep(5 * time.Millisecond)

	b.Execute(func() error { return nil })
	if b.State() != StateHalfOpen {
		t.Fatalf("Expected state HALF_OPEN after first probe, got %s", b.State())
	}

	b.Execute(func() error { return nil })
	if b.State() != StateClosed {
		t.Errorf("Expected state CLOSED after success threshold, got %s", b.State())
	}
}

func TestBreakerReopensOnHalfOpenFailure(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 1
	config.Timeout = time.Millisecond
	b := newTestBreaker(config)

	failUntilOpen(b, 1)
	time.Sleep(5 * time.Millisecond)

	err := b.Execute(func() error { return errRelayDown })
	if !errors.Is(err, errRelayDown) {
		t.Fatalf("Expected the probe error, got %v", err)
	}
	if b.State() != StateOpen {
		t.Errorf("Expected state OPEN after failed probe, got %s", b.State())
	}
}

func TestBreakerLimitsHalfOpenProbes(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 1
	config.Timeout = time.Millisecond
	config.MaxHalfOpen = 2
	b := newTestBreaker(config)

	failUntilOpen(b, 1)
	time.Sleep(5 * time.Millisecond)

	if err := b.Allow(); err != nil {
		t.Fatalf("Expected first probe admitted, got %v", err)
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("Expected second probe admitted, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrTooManyRequests) {
		t.Errorf("Expected ErrTooManyRequests, got %v", err)
	}
}

func TestBreakerReset(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 1
	b := newTestBreaker(config)

	failUntilOpen(b, 1)
	if b.State() != StateOpen {
		t.Fatalf("Expected state OPEN before reset, got %s", b.State())
	}

	b.Reset()
	if b.State() != StateClosed {
		t.Errorf("Expected state CLOSED after reset, got %s", b.State())
	}
	if err := b.Allow(); err != nil {
		t.Errorf("Expected requests admitted after reset, got %v", err)
	}
}

func TestBreakerStats(t *testing.T) {
	config := DefaultConfig()
	config.Threshold = 2
	b := newTestBreaker(config)

	b.Execute(func() error { return errRelayDown })

	stats := b.Stats()
	if stats["state"] != "CLOSED" {
		t.Errorf("Expected state CLOSED, got %v", stats["state"])
	}
	if stats["failures"] != 1 {
		t.Errorf("Expected 1 failure, got %v", stats["failures"])
	}
	if stats["name"] != "test" {
		t.Errorf("Expected name test, got %v", stats["name"])
	}
}
