package vapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DefaultURL is the voice service's websocket endpoint
const DefaultURL = "wss://api.vapi.ai/ws"

// startFrame is the first frame sent after the connection is established
type startFrame struct {
	Type        string           `json:"type"`
	PublicKey   string           `json:"publicKey"`
	AssistantID string           `json:"assistantId,omitempty"`
	Assistant   *AssistantConfig `json:"assistant,omitempty"`
}

// WSClient is a websocket-backed implementation of Client. One WSClient
// drives at most one session at a time.
type WSClient struct {
	url       string
	publicKey string

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string][]EventHandler
	done     chan struct{}
}

// NewWSClient creates a client for the voice service. The public key is the
// session credential; without it no session can be started.
func NewWSClient(serviceURL, publicKey string) (*WSClient, error) {
	if publicKey == "" {
		return nil, errors.New("voice service public key is missing")
	}
	if serviceURL == "" {
		serviceURL = DefaultURL
	}
	if _, err := url.Parse(serviceURL); err != nil {
		return nil, fmt.Errorf("invalid voice service url: %w", err)
	}

	return &WSClient{
		url:       serviceURL,
		publicKey: publicKey,
		handlers:  make(map[string][]EventHandler),
	}, nil
}

// On subscribes a handler to an event kind
func (c *WSClient) On(eventType string, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[eventType] = append(c.handlers[eventType], handler)
}

// Start dials the voice service and sends the session start frame. Events
// are dispatched from a single reader goroutine until the session ends.
func (c *WSClient) Start(ctx context.Context, opts StartOptions) error {
	if opts.AssistantID == "" && opts.Assistant == nil {
		return errors.New("either an assistant id or an assistant config is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return errors.New("a session is already in progress")
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to voice service: %w", err)
	}

	frame := startFrame{
		Type:        "start",
		PublicKey:   c.publicKey,
		AssistantID: opts.AssistantID,
		Assistant:   opts.Assistant,
	}
	if err := conn.WriteJSON(frame); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send start frame: %w", err)
	}

	c.conn = conn
	c.done = make(chan struct{})
	go c.readLoop(conn, c.done)
	return nil
}

// Stop sends the end frame and closes the connection. A no-op when no
// session is active.
func (c *WSClient) Stop() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	// Best effort: the session is over either way
	if err := conn.WriteJSON(map[string]string{"type": "end"}); err != nil {
		log.Printf("Failed to send end frame: %v", err)
	}
	return conn.Close()
}

// readLoop decodes event frames and dispatches them in arrival order. When
// the session ends, from either side, it releases the connection so the
// client can start a new session.
func (c *WSClient) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	defer c.release(conn)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Voice session read error: %v", err)
			}
			// The transport is gone; the session has ended
			c.dispatch(NewEvent(EventCallEnd, nil))
			return
		}

		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("Skipping malformed event frame: %v", err)
			continue
		}
		c.dispatch(event)

		if event.Type == EventCallEnd {
			return
		}
	}
}

// release closes the connection and clears it, unless Stop already claimed it
func (c *WSClient) release(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
	conn.Close()
}

func (c *WSClient) dispatch(event Event) {
	c.mu.Lock()
	handlers := append([]EventHandler(nil), c.handlers[event.Type]...)
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}
