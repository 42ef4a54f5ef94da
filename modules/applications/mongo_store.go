package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const applicationsCollection = "applications"

const listCap = 100

// MongoStore is the MongoDB-backed application store.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed application store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(applicationsCollection)}
}

func (s *MongoStore) Get(ctx context.Context, applicationID string) (*Application, error) {
	var application Application
	err := s.col.FindOne(ctx, bson.M{"application_id": applicationID}).Decode(&application)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &application, nil
}

func (s *MongoStore) Create(ctx context.Context, application *Application) error {
	if _, err := s.col.InsertOne(ctx, application); err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func (s *MongoStore) Exists(ctx context.Context, jobID, seekerID string) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"job_id": jobID, "job_seeker_id": seekerID})
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return count > 0, nil
}

func (s *MongoStore) ListBySeeker(ctx context.Context, seekerID string) ([]Application, error) {
	return s.find(ctx, bson.M{"job_seeker_id": seekerID})
}

func (s *MongoStore) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	return s.find(ctx, bson.M{"job_id": jobID})
}

func (s *MongoStore) SetStatus(ctx context.Context, applicationID string, status Status) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"application_id": applicationID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (s *MongoStore) CountByStatus(ctx context.Context, status Status) (int64, error) {
	query := bson.M{}
	if status != "" {
		query["status"] = status
	}
	count, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}
	return count, nil
}

func (s *MongoStore) find(ctx context.Context, query bson.M) ([]Application, error) {
	opts := options.Find().
		SetSort(bson.M{"applied_at": -1}).
		SetLimit(listCap)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	var result []Application
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return result, nil
}
