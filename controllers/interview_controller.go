package controllers

import (
	"log"
	"net/http"

	"mockmate/db"
	"mockmate/internal/ratelimit"
	"mockmate/services"

	"github.com/gin-gonic/gin"
)

type GenerateInterviewRequest struct {
	Role      string `json:"role"`
	Level     string `json:"level"`
	Type      string `json:"type"`
	Techstack string `json:"techstack"`
	Amount    int    `json:"amount"`
	UserID    string `json:"userid"`
}

type GenerateInterviewResponse struct {
	Success     bool   `json:"success"`
	InterviewID string `json:"interviewId"`
}

// GenerateInterview handles POST /api/interviews/generate. All fields except
// userid are required; a downstream Gemini failure is absorbed by the static
// question bank, so the request only fails on validation or persistence.
func GenerateInterview(c *gin.Context) {
	var req GenerateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	if req.Role == "" || req.Level == "" || req.Type == "" || req.Techstack == "" || req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	userID := resolveUserID(c, req.UserID)

	limiter := ratelimit.NewLimiter()
	allowed, err := limiter.AllowGeneration(userID, ratelimit.DefaultConfig())
	if err != nil {
		log.Printf("Rate limiter unavailable, allowing request: %v", err)
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many interview requests, try again shortly"})
		return
	}

	interviewID, err := services.CreateInterviewService(c.Request.Context(), services.CreateInterviewParams{
		Role:      req.Role,
		Level:     req.Level,
		Type:      req.Type,
		Techstack: req.Techstack,
		Amount:    req.Amount,
		UserID:    userID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create interview: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, GenerateInterviewResponse{Success: true, InterviewID: interviewID})
}

// GetInterview handles GET /api/interviews/:id; the call page loads its
// question list from here
func GetInterview(c *gin.Context) {
	interview, err := db.GetInterviewByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "interview": interview})
}

// GetUserInterviews handles GET /api/interviews?userId=...
func GetUserInterviews(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing userId"})
		return
	}

	interviews, err := db.GetInterviewsByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "interviews": interviews})
}

// GetLatestInterviews handles GET /api/interviews/latest, the dashboard list
// of finalized interviews created by other users
func GetLatestInterviews(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))

	interviews, err := db.GetLatestInterviews(c.Request.Context(), userID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "interviews": interviews})
}

// resolveUserID prefers the authenticated identity set by the middleware over
// whatever the request body carries
func resolveUserID(c *gin.Context, fromRequest string) string {
	if v, exists := c.Get("userId"); exists {
		if id, ok := v.(string); ok && id != "" {
			return id
		}
	}
	return fromRequest
}
