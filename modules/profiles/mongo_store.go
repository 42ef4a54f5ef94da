package profiles

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	seekerCollection    = "job_seeker_profiles"
	recruiterCollection = "recruiter_profiles"
)

// MongoStore is the MongoDB-backed profile store.
type MongoStore struct {
	seekers    *mongo.Collection
	recruiters *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed profile store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		seekers:    db.Collection(seekerCollection),
		recruiters: db.Collection(recruiterCollection),
	}
}

func (s *MongoStore) GetSeeker(ctx context.Context, accountID string) (*SeekerProfile, error) {
	var profile SeekerProfile
	err := s.seekers.FindOne(ctx, bson.M{"user_id": accountID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find seeker profile: %w", err)
	}
	return &profile, nil
}

func (s *MongoStore) UpsertSeeker(ctx context.Context, profile *SeekerProfile) error {
	_, err := s.seekers.ReplaceOne(ctx,
		bson.M{"user_id": profile.AccountID},
		profile,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert seeker profile: %w", err)
	}
	return nil
}

func (s *MongoStore) GetRecruiter(ctx context.Context, accountID string) (*RecruiterProfile, error) {
	var profile RecruiterProfile
	err := s.recruiters.FindOne(ctx, bson.M{"user_id": accountID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recruiter profile: %w", err)
	}
	return &profile, nil
}

func (s *MongoStore) UpsertRecruiter(ctx context.Context, profile *RecruiterProfile) error {
	_, err := s.recruiters.ReplaceOne(ctx,
		bson.M{"user_id": profile.AccountID},
		profile,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert recruiter profile: %w", err)
	}
	return nil
}
