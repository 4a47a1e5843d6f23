package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker/v2"
)

func TestCircuitBreakerBackendPassesThrough(t *testing.T) {
	inner := newMockBackend([]SearchResult{{Title: "ok"}})
	b := NewCircuitBreakerBackend(inner, newTestLogger())

	results, err := b.Search(context.Background(), testSearchRequest())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "ok" {
		t.Errorf("results = %+v", results)
	}
	if b.Name() != "mock" {
		t.Errorf("Name() = %q, want inner name", b.Name())
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", b.State())
	}
}

func TestCircuitBreakerBackendOpensAfterConsecutiveFailures(t *testing.T) {
	inner := newMockBackend(nil)
	inner.err = errors.New("backend down")
	b := NewCircuitBreakerBackend(inner, newTestLogger())

	for i := 0; i < int(defaultCBMaxFailures); i++ {
		if _, err := b.Search(context.Background(), testSearchRequest()); err == nil {
			t.Fatal("expected failure")
		}
	}
	if b.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open after %d failures", b.State(), defaultCBMaxFailures)
	}

	calls := inner.callCount
	_, err := b.Search(context.Background(), testSearchRequest())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if inner.callCount != calls {
		t.Error("open circuit still reached the backend")
	}
}

func TestCircuitBreakerBackendIgnoresCancellation(t *testing.T) {
	inner := newMockBackend(nil)
	inner.err = context.Canceled
	b := NewCircuitBreakerBackend(inner, newTestLogger())

	for i := 0; i < int(defaultCBMaxFailures)*2; i++ {
		b.Search(context.Background(), testSearchRequest())
	}
	if b.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, cancellations must not trip the breaker", b.State())
	}
}
