// Package client talks to the MockMate backend: it submits the interview
// setup form and delivers finished transcripts for feedback.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mockmate/models"
)

// API is an HTTP client for the backend endpoints
type API struct {
	BaseURL    string
	AuthToken  string // optional bearer token
	HTTPClient *http.Client
}

// New creates an API client with a sane default timeout
func New(baseURL string) *API {
	return &API{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

type generateRequest struct {
	Role      string `json:"role"`
	Level     string `json:"level"`
	Type      string `json:"type"`
	Techstack string `json:"techstack"`
	Amount    int    `json:"amount"`
	UserID    string `json:"userid"`
}

type generateResponse struct {
	Success     bool   `json:"success"`
	InterviewID string `json:"interviewId"`
	Error       string `json:"error"`
}

// GenerateInterview creates an interview from the form values and returns
// the new interview id
func (a *API) GenerateInterview(ctx context.Context, form InterviewForm, userID string) (string, error) {
	payload := generateRequest{
		Role:      form.Role,
		Level:     form.Level,
		Type:      form.Type,
		Techstack: form.Techstack,
		Amount:    form.Amount,
		UserID:    userID,
	}

	var resp generateResponse
	if err := a.postJSON(ctx, "/api/interviews/generate", payload, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("failed to create interview: %s", resp.Error)
	}
	return resp.InterviewID, nil
}

type interviewResponse struct {
	Success   bool              `json:"success"`
	Interview *models.Interview `json:"interview"`
	Error     string            `json:"error"`
}

// GetInterview fetches an interview, including its question list, by id
func (a *API) GetInterview(ctx context.Context, id string) (*models.Interview, error) {
	var resp interviewResponse
	if err := a.getJSON(ctx, "/api/interviews/"+id, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Interview == nil {
		return nil, fmt.Errorf("failed to load interview: %s", resp.Error)
	}
	return resp.Interview, nil
}

type feedbackRequest struct {
	InterviewID string                  `json:"interviewId"`
	UserID      string                  `json:"userId"`
	Transcript  []models.TranscriptTurn `json:"transcript"`
	FeedbackID  string                  `json:"feedbackId,omitempty"`
}

type feedbackResponse struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId"`
	Error      string `json:"error"`
}

// CreateFeedback submits a call transcript for scoring. Satisfies the
// agent's FeedbackSubmitter interface.
func (a *API) CreateFeedback(ctx context.Context, interviewID, userID string, transcript []models.TranscriptTurn, feedbackID string) (string, error) {
	payload := feedbackRequest{
		InterviewID: interviewID,
		UserID:      userID,
		Transcript:  transcript,
		FeedbackID:  feedbackID,
	}

	var resp feedbackResponse
	if err := a.postJSON(ctx, "/api/feedback/create", payload, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("failed to create feedback: %s", resp.Error)
	}
	return resp.FeedbackID, nil
}

func (a *API) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request data: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return a.do(req, out)
}

func (a *API) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return a.do(req, out)
}

func (a *API) do(req *http.Request, out interface{}) error {
	if a.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.AuthToken)
	}

	httpClient := a.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Error bodies still carry the success flag and message; decode them too
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("API error (%d): %s", resp.StatusCode, string(data))
	}
	return nil
}
