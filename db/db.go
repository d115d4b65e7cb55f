package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"mockmate/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database
var InterviewCollection *mongo.Collection
var FeedbackCollection *mongo.Collection

// feedbackWriter is the slice of mongo.Collection that the feedback upsert
// uses; tests swap in an in-memory implementation
type feedbackWriter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

var feedbackWrites feedbackWriter

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "mockmate"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "mockmate"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "mockmate"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	InterviewCollection = MongoDatabase.Collection("interviews")
	FeedbackCollection = MongoDatabase.Collection("feedback")
	feedbackWrites = FeedbackCollection
	return nil
}

// SaveInterview inserts a new interview document and returns its hex id
func SaveInterview(ctx context.Context, interview models.Interview) (string, error) {
	if interview.ID.IsZero() {
		interview.ID = primitive.NewObjectID()
	}
	_, err := InterviewCollection.InsertOne(ctx, interview)
	if err != nil {
		log.Printf("Error saving interview: %v", err)
		return "", err
	}
	return interview.ID.Hex(), nil
}

// GetInterviewByID retrieves a single interview document
func GetInterviewByID(ctx context.Context, id string) (*models.Interview, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid interview id: %w", err)
	}

	var interview models.Interview
	err = InterviewCollection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&interview)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no interview found: %s", id)
		}
		return nil, err
	}
	return &interview, nil
}

// GetInterviewsByUserID retrieves a user's interviews, most recent first
func GetInterviewsByUserID(ctx context.Context, userID string) ([]models.Interview, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := InterviewCollection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find interviews: %w", err)
	}
	defer cursor.Close(ctx)

	var interviews []models.Interview
	if err = cursor.All(ctx, &interviews); err != nil {
		return nil, fmt.Errorf("failed to decode interviews: %w", err)
	}
	return interviews, nil
}

// GetLatestInterviews retrieves finalized interviews from other users for the
// dashboard's "take an interview" list
func GetLatestInterviews(ctx context.Context, excludeUserID string, limit int64) ([]models.Interview, error) {
	filter := bson.M{"finalized": true}
	if excludeUserID != "" {
		filter["userId"] = bson.M{"$ne": excludeUserID}
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(limit)
	cursor, err := InterviewCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find interviews: %w", err)
	}
	defer cursor.Close(ctx)

	var interviews []models.Interview
	if err = cursor.All(ctx, &interviews); err != nil {
		return nil, fmt.Errorf("failed to decode interviews: %w", err)
	}
	return interviews, nil
}

// UpsertFeedback inserts a new feedback document, or overwrites the one
// identified by feedbackID when supplied. Returns the resulting hex id.
func UpsertFeedback(ctx context.Context, feedback models.Feedback, feedbackID string) (string, error) {
	now := time.Now()
	feedback.UpdatedAt = now

	if feedbackID != "" {
		objectID, err := primitive.ObjectIDFromHex(feedbackID)
		if err != nil {
			return "", fmt.Errorf("invalid feedback id: %w", err)
		}
		feedback.ID = objectID

		update := bson.M{
			"$set": bson.M{
				"interviewId":         feedback.InterviewID,
				"userId":              feedback.UserID,
				"totalScore":          feedback.TotalScore,
				"categoryScores":      feedback.CategoryScores,
				"strengths":           feedback.Strengths,
				"areasForImprovement": feedback.AreasForImprovement,
				"finalAssessment":     feedback.FinalAssessment,
				"updatedAt":           now,
			},
			"$setOnInsert": bson.M{
				"createdAt": now,
			},
		}
		opts := options.Update().SetUpsert(true)
		if _, err := feedbackWrites.UpdateOne(ctx, bson.M{"_id": objectID}, update, opts); err != nil {
			log.Printf("Error upserting feedback: %v", err)
			return "", err
		}
		return objectID.Hex(), nil
	}

	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = now
	if _, err := feedbackWrites.InsertOne(ctx, feedback); err != nil {
		log.Printf("Error saving feedback: %v", err)
		return "", err
	}
	return feedback.ID.Hex(), nil
}

// GetFeedbackByInterviewID retrieves the most recent feedback a user received
// for an interview
func GetFeedbackByInterviewID(ctx context.Context, interviewID, userID string) (*models.Feedback, error) {
	filter := bson.M{"interviewId": interviewID, "userId": userID}
	opts := options.FindOne().SetSort(bson.M{"createdAt": -1})

	var feedback models.Feedback
	err := FeedbackCollection.FindOne(ctx, filter, opts).Decode(&feedback)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no feedback found for interview: %s", interviewID)
		}
		return nil, err
	}
	return &feedback, nil
}
