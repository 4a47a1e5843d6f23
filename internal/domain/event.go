package domain

import (
	"context"
	"encoding/json"
	"time"
)

// EventType identifies the kind of event being published.
type EventType string

const (
	EventToolCallStarted   EventType = "tool.call.started"
	EventToolCallProgress  EventType = "tool.call.progress"
	EventToolCallCompleted EventType = "tool.call.completed"
	EventSessionCreated    EventType = "session.created"
)

// ToolProgressPayload is the payload of a tool.call.progress event. A tool
// emits at most one progress event per invocation, before any network
// latency is incurred, so an observer can see what is being worked on.
type ToolProgressPayload struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
}

// Event is the envelope published on the event bus.
type Event struct {
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	SessionID string          `json:"session_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// EventHandler is a callback invoked when an event is received.
type EventHandler func(ctx context.Context, event Event)

// EventBus provides a publish/subscribe mechanism for domain events.
type EventBus interface {
	// Publish sends an event to all matching subscribers.
	Publish(ctx context.Context, event Event)
	// Subscribe registers a handler for a specific event type.
	// Returns an unsubscribe function.
	Subscribe(eventType EventType, handler EventHandler) func()
	// Close drains in-flight handlers and prevents new publishes.
	Close()
}
