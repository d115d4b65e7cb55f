package services

import (
	"strings"
	"testing"

	"mockmate/models"
)

func TestFormatTranscriptRendersTurnsInOrder(t *testing.T) {
	transcript := []models.TranscriptTurn{
		{Role: "assistant", Content: "Tell me about yourself"},
		{Role: "user", Content: "I am a backend engineer"},
	}

	formatted := FormatTranscript(transcript)
	lines := strings.Split(strings.TrimSpace(formatted), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "- assistant: Tell me about yourself" {
		t.Errorf("Unexpected first line: %q", lines[0])
	}
	if lines[1] != "- user: I am a backend engineer" {
		t.Errorf("Unexpected second line: %q", lines[1])
	}
}

func TestParseFeedbackPayload(t *testing.T) {
	payload, err := ParseFeedbackPayload(`{
		"totalScore": 72,
		"categoryScores": [
			{"name": "Communication Skills", "score": 80, "comment": "Clear answers"},
			{"name": "Technical Knowledge", "score": 65, "comment": "Some gaps"}
		],
		"strengths": ["Structured thinking"],
		"areasForImprovement": ["More depth on databases"],
		"finalAssessment": "Solid candidate."
	}`)
	if err != nil {
		t.Fatalf("Failed to parse payload: %v", err)
	}

	if payload.TotalScore != 72 {
		t.Errorf("Expected total score 72, got %d", payload.TotalScore)
	}
	if len(payload.CategoryScores) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(payload.CategoryScores))
	}
	if payload.CategoryScores[0].Name != "Communication Skills" {
		t.Errorf("Unexpected category: %q", payload.CategoryScores[0].Name)
	}
}

func TestParseFeedbackPayloadClampsScores(t *testing.T) {
	payload, err := ParseFeedbackPayload(`{
		"totalScore": 140,
		"categoryScores": [
			{"name": "Cultural Fit", "score": -5, "comment": "..."},
			{"name": "Confidence & Clarity", "score": 101, "comment": "..."}
		],
		"strengths": [],
		"areasForImprovement": [],
		"finalAssessment": ""
	}`)
	if err != nil {
		t.Fatalf("Failed to parse payload: %v", err)
	}

	if payload.TotalScore != 100 {
		t.Errorf("Expected total score clamped to 100, got %d", payload.TotalScore)
	}
	if payload.CategoryScores[0].Score != 0 {
		t.Errorf("Expected negative score clamped to 0, got %d", payload.CategoryScores[0].Score)
	}
	if payload.CategoryScores[1].Score != 100 {
		t.Errorf("Expected overflow score clamped to 100, got %d", payload.CategoryScores[1].Score)
	}
}

func TestParseFeedbackPayloadRejectsGarbage(t *testing.T) {
	if _, err := ParseFeedbackPayload(""); err == nil {
		t.Error("Expected an error for empty output")
	}
	if _, err := ParseFeedbackPayload("The candidate did well overall."); err == nil {
		t.Error("Expected an error for non-JSON output")
	}
}
