package tool

import (
	"context"
	"log/slog"
	"sync"

	"seeker/internal/domain"
)

func newTestLogger() *slog.Logger { return slog.Default() }

// mockSearchBackend implements SearchBackend for testing.
type mockSearchBackend struct {
	results   []SearchResult
	err       error
	callCount int
	lastReq   SearchRequest
	onSearch  func()
}

func (m *mockSearchBackend) Search(_ context.Context, req SearchRequest) ([]SearchResult, error) {
	m.callCount++
	m.lastReq = req
	if m.onSearch != nil {
		m.onSearch()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

func (m *mockSearchBackend) Name() string { return "mock" }

func newMockBackend(results []SearchResult) *mockSearchBackend {
	return &mockSearchBackend{results: results}
}

// recordingBus captures published events synchronously.
type recordingBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBus) Publish(_ context.Context, event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(domain.EventType, domain.EventHandler) func() {
	return func() {}
}

func (b *recordingBus) Close() {}

func (b *recordingBus) published() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Event(nil), b.events...)
}
