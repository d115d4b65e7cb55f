package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func interviewTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/interviews/generate", GenerateInterview)
	return router
}

func TestGenerateInterviewRejectsInvalidPayload(t *testing.T) {
	router := interviewTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/interviews/generate", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed payload, got %d", w.Code)
	}
}

func TestGenerateInterviewRejectsMissingFields(t *testing.T) {
	router := interviewTestRouter()

	cases := []map[string]interface{}{
		{},
		{"role": "Frontend Developer", "level": "Junior", "type": "technical", "techstack": "React"}, // no amount
		{"role": "Frontend Developer", "level": "Junior", "type": "technical", "amount": 5},
		{"role": "Frontend Developer", "level": "Junior", "techstack": "React", "amount": 5},
		{"role": "Frontend Developer", "type": "technical", "techstack": "React", "amount": 5},
		{"level": "Junior", "type": "technical", "techstack": "React", "amount": 5},
		{"role": "Frontend Developer", "level": "Junior", "type": "technical", "techstack": "React", "amount": 0},
		{"role": "Frontend Developer", "level": "Junior", "type": "technical", "techstack": "React", "amount": -3},
	}

	for i, payload := range cases {
		w := postJSON(t, router, "/api/interviews/generate", payload)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Case %d: expected 400 for incomplete request, got %d", i, w.Code)
			continue
		}

		var resp map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Case %d: failed to decode response: %v", i, err)
		}
		if success, _ := resp["success"].(bool); success {
			t.Errorf("Case %d: expected success=false on validation failure", i)
		}
	}
}

func TestResolveUserIDPrefersAuthenticatedIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if got := resolveUserID(c, "body-user"); got != "body-user" {
		t.Errorf("Expected request value without auth, got %q", got)
	}

	c.Set("userId", "token-user")
	if got := resolveUserID(c, "body-user"); got != "token-user" {
		t.Errorf("Expected authenticated identity to win, got %q", got)
	}

	c.Set("userId", "")
	if got := resolveUserID(c, "body-user"); got != "body-user" {
		t.Errorf("Expected fallback to request value on empty identity, got %q", got)
	}
}
