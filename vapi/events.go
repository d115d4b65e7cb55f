package vapi

import "time"

// Session lifecycle and message event kinds emitted by the voice service
const (
	EventCallStart   = "call-start"
	EventCallEnd     = "call-end"
	EventSpeechStart = "speech-start"
	EventSpeechEnd   = "speech-end"
	EventMessage     = "message"
)

// Message kinds carried by EventMessage
const (
	MessageTranscript = "transcript"  // live caption text
	MessageAddMessage = "add-message" // full conversational turn
)

// Message is the payload of a message event
type Message struct {
	Type       string `json:"type"`
	Role       string `json:"role,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Content    string `json:"content,omitempty"`
}

// Event is one session event as delivered over the wire
type Event struct {
	Type      string   `json:"type"`
	Message   *Message `json:"message,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// NewEvent creates an event with the current timestamp; used by tests and
// fake clients
func NewEvent(eventType string, message *Message) Event {
	return Event{
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now().Unix(),
	}
}
