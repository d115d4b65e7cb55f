// Package agent drives one voice-interview session: it owns a voice-SDK
// client, tracks call status through the session lifecycle events, captures
// the live captions and the structured transcript, and submits the
// transcript for feedback when the call ends.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"mockmate/models"
	"mockmate/vapi"

	"github.com/google/uuid"
)

// CallStatus is the session state as shown to the user
type CallStatus int

const (
	StatusInactive CallStatus = iota
	StatusConnecting
	StatusActive
	StatusFinished
)

func (s CallStatus) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusConnecting:
		return "connecting"
	case StatusActive:
		return "active"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Session purposes. An interview session carries a fixed question list; a
// generate session uses the pre-registered assistant to collect interview
// parameters by voice.
const (
	TypeInterview = "interview"
	TypeGenerate  = "generate"
)

// FeedbackSubmitter delivers a finished transcript for scoring
type FeedbackSubmitter interface {
	CreateFeedback(ctx context.Context, interviewID, userID string, transcript []models.TranscriptTurn, feedbackID string) (string, error)
}

// Options configure one interview session
type Options struct {
	UserName    string
	UserID      string
	InterviewID string
	FeedbackID  string // optional; resubmissions overwrite this feedback record
	Type        string // TypeInterview or TypeGenerate
	Questions   []string
	AssistantID string // pre-registered assistant, required for generate sessions
}

// Agent is the call session controller. All state is mutex-guarded because
// SDK events arrive on the transport goroutine while Start/Stop come from
// the caller.
type Agent struct {
	sdk      vapi.Client
	feedback FeedbackSubmitter
	opts     Options

	mu         sync.Mutex
	sessionID  string
	status     CallStatus
	speaking   bool
	captions   []string
	transcript []models.TranscriptTurn
	submitted  bool
}

// New creates an agent over a voice client and subscribes its event
// handlers. The client must not have been started yet.
func New(sdk vapi.Client, feedback FeedbackSubmitter, opts Options) (*Agent, error) {
	if sdk == nil {
		return nil, errors.New("voice client is not configured")
	}
	if opts.Type == "" {
		opts.Type = TypeInterview
	}

	a := &Agent{
		sdk:      sdk,
		feedback: feedback,
		opts:     opts,
		status:   StatusInactive,
	}

	sdk.On(vapi.EventCallStart, a.onCallStart)
	sdk.On(vapi.EventCallEnd, a.onCallEnd)
	sdk.On(vapi.EventSpeechStart, a.onSpeechStart)
	sdk.On(vapi.EventSpeechEnd, a.onSpeechEnd)
	sdk.On(vapi.EventMessage, a.onMessage)

	return a, nil
}

// Start begins a new call. A second start while a session is connecting or
// active is rejected; starting again after a finished call begins a fresh
// session with cleared captions and transcript.
func (a *Agent) Start(ctx context.Context) error {
	opts, err := a.startOptions()
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.status == StatusConnecting || a.status == StatusActive {
		a.mu.Unlock()
		return fmt.Errorf("a session is already %s", a.status)
	}
	a.sessionID = uuid.NewString()
	a.status = StatusConnecting
	a.speaking = false
	a.captions = nil
	a.transcript = nil
	a.submitted = false
	a.mu.Unlock()

	if err := a.sdk.Start(ctx, opts); err != nil {
		a.mu.Lock()
		if a.status == StatusConnecting {
			a.status = StatusInactive
		}
		a.mu.Unlock()
		return fmt.Errorf("failed to start voice session: %w", err)
	}
	return nil
}

// startOptions selects the session variant: a dynamic assistant built from
// the question list for real interviews, the pre-registered assistant
// otherwise.
func (a *Agent) startOptions() (vapi.StartOptions, error) {
	if a.opts.Type == TypeInterview && len(a.opts.Questions) > 0 {
		config := vapi.BuildAssistantConfig(a.opts.Questions, a.opts.UserName)
		return vapi.StartOptions{Assistant: &config}, nil
	}
	if a.opts.AssistantID == "" {
		return vapi.StartOptions{}, errors.New("assistant id is missing and no question list was supplied")
	}
	return vapi.StartOptions{AssistantID: a.opts.AssistantID}, nil
}

// Stop terminates the session and submits the transcript for feedback.
// Safe to call at any time, including before any session was started; the
// submission happens at most once per session.
func (a *Agent) Stop(ctx context.Context) error {
	if err := a.sdk.Stop(); err != nil {
		log.Printf("Voice session stop error: %v", err)
	}

	a.mu.Lock()
	if a.status != StatusInactive {
		a.status = StatusFinished
	}
	a.speaking = false
	shouldSubmit := !a.submitted &&
		len(a.transcript) > 0 &&
		a.opts.InterviewID != "" &&
		a.opts.UserID != ""
	if shouldSubmit {
		a.submitted = true
	}
	transcript := append([]models.TranscriptTurn(nil), a.transcript...)
	a.mu.Unlock()

	if !shouldSubmit {
		return nil
	}

	// Best effort: the call has already ended from the service's
	// perspective, so a failed submission is logged and absorbed.
	submitCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if a.feedback == nil {
		log.Printf("No feedback submitter configured; dropping transcript of %d turns", len(transcript))
		return nil
	}

	feedbackID, err := a.feedback.CreateFeedback(submitCtx, a.opts.InterviewID, a.opts.UserID, transcript, a.opts.FeedbackID)
	if err != nil {
		log.Printf("Failed to submit transcript for feedback: %v", err)
		return nil
	}
	log.Printf("Feedback created: %s", feedbackID)
	return nil
}

func (a *Agent) onCallStart(vapi.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == StatusConnecting {
		a.status = StatusActive
	}
}

func (a *Agent) onCallEnd(vapi.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == StatusConnecting || a.status == StatusActive {
		a.status = StatusFinished
	}
	a.speaking = false
}

func (a *Agent) onSpeechStart(vapi.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == StatusActive {
		a.speaking = true
	}
}

func (a *Agent) onSpeechEnd(vapi.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.speaking = false
}

func (a *Agent) onMessage(event vapi.Event) {
	if event.Message == nil {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Message events outside a live session are stale; drop them
	if a.status != StatusActive {
		return
	}

	switch event.Message.Type {
	case vapi.MessageTranscript:
		if event.Message.Transcript != "" {
			a.captions = append(a.captions, event.Message.Transcript)
		}
	case vapi.MessageAddMessage:
		if event.Message.Role != "" && event.Message.Content != "" {
			a.transcript = append(a.transcript, models.TranscriptTurn{
				Role:    event.Message.Role,
				Content: event.Message.Content,
			})
		}
	}
}

// Status returns the current call status
func (a *Agent) Status() CallStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// IsSpeaking reports whether the assistant is currently producing speech
func (a *Agent) IsSpeaking() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.speaking
}

// LastCaption returns the most recent live caption, or "" before any arrived
func (a *Agent) LastCaption() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.captions) == 0 {
		return ""
	}
	return a.captions[len(a.captions)-1]
}

// Transcript returns a copy of the structured transcript so far
func (a *Agent) Transcript() []models.TranscriptTurn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.TranscriptTurn(nil), a.transcript...)
}

// SessionID returns the id of the current or most recent session
func (a *Agent) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}
