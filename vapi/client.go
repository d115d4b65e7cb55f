package vapi

import "context"

// StartOptions selects the session variant: a pre-registered assistant id or
// an inline assistant configuration. Exactly one should be set.
type StartOptions struct {
	AssistantID string           `json:"assistantId,omitempty"`
	Assistant   *AssistantConfig `json:"assistant,omitempty"`
}

// EventHandler receives session events for one subscribed event kind
type EventHandler func(Event)

// Client is the voice-session SDK surface the call controller depends on.
// Implementations deliver events from a single dispatch goroutine, so
// handlers observe them in arrival order.
type Client interface {
	// Start opens a voice session. It returns an error if the session could
	// not be established; lifecycle events follow asynchronously.
	Start(ctx context.Context, opts StartOptions) error

	// Stop terminates the session. Safe to call on a never-started or
	// already-ended session.
	Stop() error

	// On subscribes a handler to an event kind. Must be called before Start.
	On(eventType string, handler EventHandler)
}
