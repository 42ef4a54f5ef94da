package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	accountsCollection = "users"
	sessionsCollection = "user_sessions"
)

// MongoAccountStore implements AccountStore on a MongoDB collection.
type MongoAccountStore struct {
	col *mongo.Collection
}

// NewMongoAccountStore creates the store over the given database.
func NewMongoAccountStore(db *mongo.Database) *MongoAccountStore {
	return &MongoAccountStore{col: db.Collection(accountsCollection)}
}

func (s *MongoAccountStore) Find(ctx context.Context, accountID string) (*Account, error) {
	var account Account
	err := s.col.FindOne(ctx, bson.M{"user_id": accountID}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return &account, nil
}

func (s *MongoAccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	var account Account
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}
	return &account, nil
}

func (s *MongoAccountStore) Create(ctx context.Context, account *Account) error {
	if _, err := s.col.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (s *MongoAccountStore) UpdateProfile(ctx context.Context, accountID, name, picture string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": accountID},
		bson.M{"$set": bson.M{"name": name, "picture": picture}},
	)
	if err != nil {
		return fmt.Errorf("failed to update account profile: %w", err)
	}
	return nil
}

func (s *MongoAccountStore) List(ctx context.Context) ([]Account, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var accounts []Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, nil
}

func (s *MongoAccountStore) Delete(ctx context.Context, accountID string) error {
	if _, err := s.col.DeleteOne(ctx, bson.M{"user_id": accountID}); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// MongoSessionStore implements SessionStore on a MongoDB collection.
type MongoSessionStore struct {
	col *mongo.Collection
}

// NewMongoSessionStore creates the store over the given database.
func NewMongoSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{col: db.Collection(sessionsCollection)}
}

func (s *MongoSessionStore) Find(ctx context.Context, token string) (*SessionRecord, error) {
	var record SessionRecord
	err := s.col.FindOne(ctx, bson.M{"session_token": token}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &record, nil
}

func (s *MongoSessionStore) Create(ctx context.Context, record *SessionRecord) error {
	if _, err := s.col.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *MongoSessionStore) DeleteAll(ctx context.Context, token string) error {
	if _, err := s.col.DeleteMany(ctx, bson.M{"session_token": token}); err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
