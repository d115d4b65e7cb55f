package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryScore is one scored dimension of an interview performance
type CategoryScore struct {
	Name    string `json:"name" bson:"name"`
	Score   int    `json:"score" bson:"score"` // 0-100
	Comment string `json:"comment" bson:"comment"`
}

// Feedback is the structured evaluation of one interview transcript
type Feedback struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InterviewID         string             `json:"interviewId" bson:"interviewId"`
	UserID              string             `json:"userId" bson:"userId"`
	TotalScore          int                `json:"totalScore" bson:"totalScore"` // 0-100
	CategoryScores      []CategoryScore    `json:"categoryScores" bson:"categoryScores"`
	Strengths           []string           `json:"strengths" bson:"strengths"`
	AreasForImprovement []string           `json:"areasForImprovement" bson:"areasForImprovement"`
	FinalAssessment     string             `json:"finalAssessment" bson:"finalAssessment"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}
