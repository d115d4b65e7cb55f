package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interview is one configured mock interview with its generated question list.
// Documents are written once by the question generator and never mutated.
type Interview struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Role       string             `json:"role" bson:"role"`
	Level      string             `json:"level" bson:"level"`
	Type       string             `json:"type" bson:"type"` // "Technical", "Behavioral" or "Mixed"
	Techstack  []string           `json:"techstack" bson:"techstack"`
	Questions  []string           `json:"questions" bson:"questions"`
	UserID     string             `json:"userId" bson:"userId"`
	Finalized  bool               `json:"finalized" bson:"finalized"`
	CoverImage string             `json:"coverImage" bson:"coverImage"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
