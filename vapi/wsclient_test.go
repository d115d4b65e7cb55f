package vapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{}

// newVoiceServer runs one session handler per connection and returns the
// server's ws:// URL
func newVoiceServer(t *testing.T, session func(conn *websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		session(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestNewWSClientRequiresPublicKey(t *testing.T) {
	if _, err := NewWSClient(DefaultURL, ""); err == nil {
		t.Error("Expected error without a public key")
	}
}

func TestStartSendsStartFrame(t *testing.T) {
	frames := make(chan startFrame, 1)
	url := newVoiceServer(t, func(conn *websocket.Conn) {
		var frame startFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Errorf("Failed to read start frame: %v", err)
			return
		}
		frames <- frame
		conn.ReadMessage() // hold the session until the client leaves
	})

	client, err := NewWSClient(url, "pk-test")
	if err != nil {
		t.Fatalf("NewWSClient failed: %v", err)
	}

	config := BuildAssistantConfig([]string{"Tell me about yourself"}, "Ada")
	if err := client.Start(context.Background(), StartOptions{Assistant: &config}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer client.Stop()

	select {
	case frame := <-frames:
		if frame.Type != "start" {
			t.Errorf("Expected frame type 'start', got %q", frame.Type)
		}
		if frame.PublicKey != "pk-test" {
			t.Errorf("Expected the public key in the start frame, got %q", frame.PublicKey)
		}
		if frame.AssistantID != "" {
			t.Errorf("Expected no assistant id for a dynamic session, got %q", frame.AssistantID)
		}
		if frame.Assistant == nil {
			t.Fatal("Expected the assistant config in the start frame")
		}
		if frame.Assistant.Name != config.Name {
			t.Errorf("Expected assistant %q, got %q", config.Name, frame.Assistant.Name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start frame never arrived")
	}
}

func TestStartSendsAssistantID(t *testing.T) {
	frames := make(chan startFrame, 1)
	url := newVoiceServer(t, func(conn *websocket.Conn) {
		var frame startFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		frames <- frame
		conn.ReadMessage()
	})

	client, err := NewWSClient(url, "pk-test")
	if err != nil {
		t.Fatalf("NewWSClient failed: %v", err)
	}
	if err := client.Start(context.Background(), StartOptions{AssistantID: "asst-1"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer client.Stop()

	select {
	case frame := <-frames:
		if frame.AssistantID != "asst-1" {
			t.Errorf("Expected assistant id in the start frame, got %q", frame.AssistantID)
		}
		if frame.Assistant != nil {
			t.Error("Expected no inline assistant config for a registered assistant")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start frame never arrived")
	}
}

func TestStartRequiresAnAssistant(t *testing.T) {
	client, err := NewWSClient(DefaultURL, "pk-test")
	if err != nil {
		t.Fatalf("NewWSClient failed: %v", err)
	}
	if err := client.Start(context.Background(), StartOptions{}); err == nil {
		t.Error("Expected error without an assistant id or config")
	}
}

func TestEventsDispatchedInOrder(t *testing.T) {
	url := newVoiceServer(t, func(conn *websocket.Conn) {
		var frame startFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		conn.WriteJSON(NewEvent(EventCallStart, nil))
		conn.WriteJSON(NewEvent(EventMessage, &Message{Type: MessageTranscript, Transcript: "Hello"}))
		conn.WriteJSON(NewEvent(EventMessage, &Message{Type: MessageAddMessage, Role: "assistant", Content: "Hello, shall we begin?"}))
		conn.WriteJSON(NewEvent(EventCallEnd, nil))
	})

	client, err := NewWSClient(url, "pk-test")
	if err != nil {
		t.Fatalf("NewWSClient failed: %v", err)
	}

	var mu sync.Mutex
	var order []string
	ended := make(chan struct{})
	record := func(event Event) {
		mu.Lock()
		order = append(order, event.Type)
		mu.Unlock()
	}
	client.On(EventCallStart, record)
	client.On(EventMessage, record)
	client.On(EventCallEnd, func(event Event) {
		record(event)
		close(ended)
	})

	if err := client.Start(context.Background(), StartOptions{AssistantID: "asst-1"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("Call-end never arrived")
	}

	want := []string{EventCallStart, EventMessage, EventMessage, EventCallEnd}
	mu.Lock()
	defer mu.Unlock()
	if len(order) != len(want) {
		t.Fatalf("Expected %d events, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Event %d: expected %q, got %q", i, want[i], order[i])
		}
	}
}

func TestDroppedConnectionSynthesizesOneCallEnd(t *testing.T) {
	url := newVoiceServer(t, func(conn *websocket.Conn) {
		var frame startFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		conn.Close() // drop without a call-end frame
	})

	client, err := NewWSClient(url, "pk-test")
	if err != nil {
		t.Fatalf("NewWSClient failed: %v", err)
	}

	ends := make(chan Event, 4)
	client.On(EventCallEnd, func(event Event) { ends <- event })

	if err := client.Start(context.Background(), StartOptions{AssistantID: "asst-1"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	select {
	case <-ends:
	case <-time.After(2 * time.Second):
		t.Fatal("Dropped connection did not produce a call-end")
	}

	select {
	case <-ends:
		t.Error("Expected exactly one call-end, got a second")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestStopSendsEndFrame(t *testing.T) {
	endFrames := make(chan map[string]string, 1)
	url := newVoiceServer(t, func(conn *websocket.Conn) {
		var frame startFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		var end map[string]string
		if err := conn.ReadJSON(&end); err != nil {
			return
		}
		endFrames <- end
	})

	client, err := NewWSClient(url, "pk-test")
	if err != nil {
		t.Fatalf("NewWSClient failed: %v", err)
	}
	if err := client.Start(context.Background(), StartOptions{AssistantID: "asst-1"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	client.Stop()

	select {
	case end := <-endFrames:
		if end["type"] != "end" {
			t.Errorf("Expected end frame, got %v", end)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("End frame never arrived")
	}
}

func TestServiceEndedCallReleasesConnection(t *testing.T) {
	url := newVoiceServer(t, func(conn *websocket.Conn) {
		var frame startFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		conn.WriteJSON(NewEvent(EventCallEnd, nil))
		conn.ReadMessage() // wait for the client to go away
	})

	client, err := NewWSClient(url, "pk-test")
	if err != nil {
		t.Fatalf("NewWSClient failed: %v", err)
	}

	ended := make(chan struct{}, 2)
	client.On(EventCallEnd, func(Event) { ended <- struct{}{} })

	if err := client.Start(context.Background(), StartOptions{AssistantID: "asst-1"}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("Call-end never arrived")
	}

	// The read loop releases the connection after the call-end, so a fresh
	// session can start without an explicit Stop
	deadline := time.Now().Add(2 * time.Second)
	for {
		err := client.Start(context.Background(), StartOptions{AssistantID: "asst-1"})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Start after a service-ended call kept failing: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}
	client.Stop()
}
