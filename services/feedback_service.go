package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mockmate/db"
	"mockmate/models"
)

// CreateFeedbackParams are the inputs of one feedback-generation request
type CreateFeedbackParams struct {
	InterviewID string
	UserID      string
	Transcript  []models.TranscriptTurn
	FeedbackID  string // optional; overwrite this record when supplied
}

// feedbackPayload is the schema the scoring prompt asks Gemini for
type feedbackPayload struct {
	TotalScore     int `json:"totalScore"`
	CategoryScores []struct {
		Name    string `json:"name"`
		Score   int    `json:"score"`
		Comment string `json:"comment"`
	} `json:"categoryScores"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	FinalAssessment     string   `json:"finalAssessment"`
}

// CreateFeedbackService scores a transcript with Gemini and persists the
// result. There is no fallback path: a failed scoring call fails the request
// with no partial write.
func CreateFeedbackService(ctx context.Context, params CreateFeedbackParams) (string, error) {
	if geminiClient == nil {
		return "", errors.New("gemini client not initialized")
	}

	formatted := FormatTranscript(params.Transcript)

	text, err := generateDefaultModelText(ctx, buildScoringPrompt(formatted))
	if err != nil {
		return "", fmt.Errorf("failed to score transcript: %w", err)
	}

	payload, err := ParseFeedbackPayload(text)
	if err != nil {
		return "", err
	}

	feedback := models.Feedback{
		InterviewID:         params.InterviewID,
		UserID:              params.UserID,
		TotalScore:          payload.TotalScore,
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		FinalAssessment:     payload.FinalAssessment,
	}
	for _, cs := range payload.CategoryScores {
		feedback.CategoryScores = append(feedback.CategoryScores, models.CategoryScore{
			Name:    cs.Name,
			Score:   cs.Score,
			Comment: cs.Comment,
		})
	}

	return db.UpsertFeedback(ctx, feedback, params.FeedbackID)
}

// FormatTranscript renders the turn list as a linear conversation for the
// scoring prompt
func FormatTranscript(transcript []models.TranscriptTurn) string {
	var sb strings.Builder
	for _, turn := range transcript {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", turn.Role, turn.Content))
	}
	return sb.String()
}

func buildScoringPrompt(formattedTranscript string) string {
	return fmt.Sprintf(`You are an AI interviewer analyzing a mock interview. Your task is to evaluate the candidate based on structured categories. Be thorough and detailed in your analysis. Don't be lenient with the candidate. If there are mistakes or areas for improvement, point them out.

Transcript:
%s

Please score the candidate from 0 to 100 in the following areas. Do not add categories other than the ones provided:
- Communication Skills: Clarity, articulation, structured responses.
- Technical Knowledge: Understanding of key concepts for the role.
- Problem-Solving: Ability to analyze problems and propose solutions.
- Cultural Fit: Alignment with company values and job role.
- Confidence & Clarity: Confidence in responses, engagement, and clarity.

Required Output Format (JSON):
{
  "totalScore": X,
  "categoryScores": [
    {"name": "Communication Skills", "score": X, "comment": "text"},
    {"name": "Technical Knowledge", "score": X, "comment": "text"},
    {"name": "Problem-Solving", "score": X, "comment": "text"},
    {"name": "Cultural Fit", "score": X, "comment": "text"},
    {"name": "Confidence & Clarity", "score": X, "comment": "text"}
  ],
  "strengths": ["text"],
  "areasForImprovement": ["text"],
  "finalAssessment": "text"
}

Provide ONLY the JSON output without any additional text.`, formattedTranscript)
}

// ParseFeedbackPayload parses the model output strictly and clamps every
// score into the 0-100 contract
func ParseFeedbackPayload(text string) (*feedbackPayload, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("empty scoring output")
	}

	var payload feedbackPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return nil, fmt.Errorf("invalid scoring output: %w", err)
	}

	payload.TotalScore = clampScore(payload.TotalScore)
	for i := range payload.CategoryScores {
		payload.CategoryScores[i].Score = clampScore(payload.CategoryScores[i].Score)
	}
	return &payload, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
