package controllers

import (
	"log"
	"net/http"

	"mockmate/db"
	"mockmate/internal/ratelimit"
	"mockmate/models"
	"mockmate/services"

	"github.com/gin-gonic/gin"
)

type CreateFeedbackRequest struct {
	InterviewID string                  `json:"interviewId"`
	UserID      string                  `json:"userId"`
	Transcript  []models.TranscriptTurn `json:"transcript"`
	FeedbackID  string                  `json:"feedbackId"`
}

type CreateFeedbackResponse struct {
	Success    bool   `json:"success"`
	FeedbackID string `json:"feedbackId"`
}

// CreateFeedback handles POST /api/feedback/create. Unlike question
// generation there is no fallback: a failed scoring call fails the request
// with no partial write.
func CreateFeedback(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request payload: " + err.Error()})
		return
	}

	userID := resolveUserID(c, req.UserID)

	if req.InterviewID == "" || userID == "" || len(req.Transcript) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields"})
		return
	}

	limiter := ratelimit.NewLimiter()
	allowed, err := limiter.AllowFeedback(userID, ratelimit.DefaultConfig())
	if err != nil {
		log.Printf("Rate limiter unavailable, allowing request: %v", err)
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many feedback requests, try again shortly"})
		return
	}

	feedbackID, err := services.CreateFeedbackService(c.Request.Context(), services.CreateFeedbackParams{
		InterviewID: req.InterviewID,
		UserID:      userID,
		Transcript:  req.Transcript,
		FeedbackID:  req.FeedbackID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create feedback: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, CreateFeedbackResponse{Success: true, FeedbackID: feedbackID})
}

// GetFeedback handles GET /api/feedback/:interviewId?userId=..., backing the
// feedback display page
func GetFeedback(c *gin.Context) {
	userID := resolveUserID(c, c.Query("userId"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing userId"})
		return
	}

	feedback, err := db.GetFeedbackByInterviewID(c.Request.Context(), c.Param("interviewId"), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedback})
}
