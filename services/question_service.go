package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"mockmate/db"
	"mockmate/models"
	"mockmate/utils"
)

// CreateInterviewParams are the resolved inputs of one interview-generation request
type CreateInterviewParams struct {
	Role      string
	Level     string
	Type      string
	Techstack string // comma-separated, as submitted by the form
	Amount    int
	UserID    string
}

// Seams for the generation and persistence calls so the fallback wiring is
// testable without Gemini or Mongo
var (
	generateQuestionList = GenerateInterviewQuestions
	saveInterview        = db.SaveInterview
)

// CreateInterviewService generates the question list and persists the
// interview record. Question generation never fails outright: when the
// Gemini call errors, the static bank supplies the questions instead.
func CreateInterviewService(ctx context.Context, params CreateInterviewParams) (string, error) {
	questions, err := generateQuestionList(ctx, params.Role, params.Level, params.Type, params.Techstack, params.Amount)
	if err != nil {
		log.Printf("Gemini API failed, using mock questions: %v", err)
		questions = MockQuestionsForType(params.Type, params.Amount)
	}

	// The model sometimes ignores the requested count; the interview never
	// carries more questions than were asked for
	if params.Amount > 0 && len(questions) > params.Amount {
		questions = questions[:params.Amount]
	}

	userID := params.UserID
	if userID == "" {
		userID = "anonymous"
	}

	interview := models.Interview{
		Role:       params.Role,
		Level:      params.Level,
		Type:       params.Type,
		Techstack:  SplitTechstack(params.Techstack),
		Questions:  questions,
		UserID:     userID,
		Finalized:  true,
		CoverImage: utils.RandomInterviewCover(),
		CreatedAt:  time.Now(),
	}

	return saveInterview(ctx, interview)
}

// GenerateInterviewQuestions asks Gemini for exactly amount questions as a
// JSON array of strings
func GenerateInterviewQuestions(ctx context.Context, role, level, interviewType, techstack string, amount int) ([]string, error) {
	prompt := fmt.Sprintf(`Prepare interview questions for a %s position at %s level.
Focus: %s questions
Tech Stack: %s
Number of questions: %d

The questions are going to be read by a voice assistant so do not use "/" or "*" or any other special characters which might break the voice assistant.
Return ONLY as JSON array format with no additional text:
["Question 1","Question 2",...]`,
		role, level, interviewType, techstack, amount)

	text, err := generateDefaultModelText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := ParseQuestionList(text)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ParseQuestionList parses the model output into a non-empty question list.
// Output that is not a JSON array is salvaged as a single question, matching
// how the voice assistant would read it.
func ParseQuestionList(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("empty model output")
	}

	var questions []string
	if err := json.Unmarshal([]byte(trimmed), &questions); err != nil {
		return []string{trimmed}, nil
	}

	filtered := questions[:0]
	for _, q := range questions {
		if strings.TrimSpace(q) != "" {
			filtered = append(filtered, strings.TrimSpace(q))
		}
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("model returned no usable questions")
	}
	return filtered, nil
}

// SplitTechstack turns the comma-separated form value into a trimmed list
func SplitTechstack(techstack string) []string {
	parts := strings.Split(techstack, ",")
	stack := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			stack = append(stack, trimmed)
		}
	}
	return stack
}
