package tool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Default circuit breaker settings.
const (
	defaultCBMaxFailures uint32        = 5
	defaultCBTimeout     time.Duration = 30 * time.Second
	defaultCBInterval    time.Duration = 60 * time.Second
)

// CircuitBreakerBackend wraps a SearchBackend with circuit breaker protection.
// When the wrapped backend fails repeatedly, the circuit opens and subsequent
// searches fail fast without reaching the provider, preventing retry storms.
type CircuitBreakerBackend struct {
	inner   SearchBackend
	breaker *gobreaker.CircuitBreaker[[]SearchResult]
	logger  *slog.Logger
}

// NewCircuitBreakerBackend wraps inner with a circuit breaker using default
// settings.
func NewCircuitBreakerBackend(inner SearchBackend, logger *slog.Logger) *CircuitBreakerBackend {
	cb := gobreaker.NewCircuitBreaker[[]SearchResult](gobreaker.Settings{
		Name:        "search:" + inner.Name(),
		MaxRequests: 1, // allow 1 probe in half-open state
		Interval:    defaultCBInterval,
		Timeout:     defaultCBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= defaultCBMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
		IsSuccessful: func(err error) bool {
			// Cancellation is the caller's doing, not a provider fault.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &CircuitBreakerBackend{
		inner:   inner,
		breaker: cb,
		logger:  logger,
	}
}

// Search implements SearchBackend. Calls are routed through the circuit breaker.
func (b *CircuitBreakerBackend) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	results, err := b.breaker.Execute(func() ([]SearchResult, error) {
		return b.inner.Search(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("backend %q circuit open: %w", b.inner.Name(), err)
		}
		return nil, err
	}
	return results, nil
}

// Name implements SearchBackend.
func (b *CircuitBreakerBackend) Name() string { return b.inner.Name() }

// State returns the current circuit breaker state for monitoring.
func (b *CircuitBreakerBackend) State() gobreaker.State {
	return b.breaker.State()
}

var _ SearchBackend = (*CircuitBreakerBackend)(nil)
