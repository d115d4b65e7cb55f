package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MaxQuestionAmount bounds how many questions one interview may request
const MaxQuestionAmount = 20

// InterviewForm holds the interview parameters a user enters before
// submission. Values survive a failed submit so the user can retry.
type InterviewForm struct {
	Role      string
	Level     string
	Type      string
	Techstack string
	Amount    int
}

// Validate checks the form the same way the setup page does before it ever
// reaches the server
func (f *InterviewForm) Validate() error {
	if strings.TrimSpace(f.Role) == "" {
		return errors.New("role is required")
	}
	if strings.TrimSpace(f.Level) == "" {
		return errors.New("level is required")
	}
	if strings.TrimSpace(f.Type) == "" {
		return errors.New("type is required")
	}
	if strings.TrimSpace(f.Techstack) == "" {
		return errors.New("tech stack is required")
	}
	if f.Amount < 1 {
		return errors.New("at least 1 question required")
	}
	if f.Amount > MaxQuestionAmount {
		return fmt.Errorf("at most %d questions allowed", MaxQuestionAmount)
	}
	return nil
}

// Submit validates the form and creates the interview. On any failure the
// entered values are left untouched and the error is returned for display.
func (f *InterviewForm) Submit(ctx context.Context, api *API, userID string) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	return api.GenerateInterview(ctx, *f, userID)
}
