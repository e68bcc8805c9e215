package backend

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/sagafitmi/internal/domain"
)

func transportFailure() error {
	return transportError(errors.New("connection refused"))
}

func TestCircuitBreaker_OpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute, nil)

	for i := 0; i < 2; i++ {
		_ = cb.Execute("cart.list", transportFailure)
	}
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open state, got %d", cb.State())
	}

	// Открытый контур не пускает запросы к сети.
	called := false
	err := cb.Execute("cart.list", func() error {
		called = true
		return nil
	})
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
	if called {
		t.Fatal("open breaker must not execute the operation")
	}
}

func TestCircuitBreaker_APIErrorsDoNotTrip(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute, nil)

	// Ответ бэкенда с кодом статуса означает, что бэкенд жив.
	_ = cb.Execute("orders.create", func() error {
		return &APIError{Status: 500, Message: "boom"}
	})
	if cb.State() != CircuitClosed {
		t.Fatalf("expected closed state after API error, got %d", cb.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond, nil)

	_ = cb.Execute("cart.list", transportFailure)
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open state, got %d", cb.State())
	}

	time.Sleep(20 * time.Millisecond)

	if err := cb.Execute("cart.list", func() error { return nil }); err != nil {
		t.Fatalf("half-open probe should pass, got %v", err)
	}
	if cb.State() != CircuitClosed {
		t.Fatalf("expected closed state after successful probe, got %d", cb.State())
	}
}

func TestCircuitBreaker_OnOpenFiresOnce(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute, nil)

	var mu sync.Mutex
	fired := 0
	done := make(chan struct{}, 1)
	cb.OnOpen(func() {
		mu.Lock()
		fired++
		mu.Unlock()
		done <- struct{}{}
	})

	_ = cb.Execute("cart.list", transportFailure)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("onOpen callback was not invoked")
	}

	// Последующие отказы при уже открытом контуре колбэк не дёргают.
	_ = cb.Execute("cart.list", transportFailure)

	mu.Lock()
	defer mu.Unlock()
	if fired != 1 {
		t.Fatalf("expected a single onOpen invocation, got %d", fired)
	}
}
