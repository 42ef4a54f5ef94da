package messaging

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const messagesCollection = "messages"

const conversationCap = 1000

// MongoStore is the MongoDB-backed message store.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongoStore creates a MongoDB-backed message store.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(messagesCollection)}
}

func (s *MongoStore) Create(ctx context.Context, message *Message) error {
	if _, err := s.col.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (s *MongoStore) Conversation(ctx context.Context, accountID, otherID string) ([]Message, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"sender_id": accountID, "receiver_id": otherID},
		bson.M{"sender_id": otherID, "receiver_id": accountID},
	}}
	opts := options.Find().
		SetSort(bson.M{"created_at": 1}).
		SetLimit(conversationCap)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	var result []Message
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return result, nil
}

func (s *MongoStore) MarkRead(ctx context.Context, accountID, otherID string) error {
	_, err := s.col.UpdateMany(ctx,
		bson.M{"sender_id": otherID, "receiver_id": accountID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

// LastPerCounterpart groups the account's messages by counterpart and
// keeps the newest one per group, all server-side.
func (s *MongoStore) LastPerCounterpart(ctx context.Context, accountID string) (LastMessages, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender_id": accountID},
			bson.M{"receiver_id": accountID},
		}}}},
		{{Key: "$sort", Value: bson.M{"created_at": -1}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$sender_id", accountID}},
				"$receiver_id",
				"$sender_id",
			}},
			"last_message": bson.M{"$first": "$$ROOT"},
		}}},
	}

	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate conversations: %w", err)
	}

	var rows []struct {
		CounterpartID string  `bson:"_id"`
		LastMessage   Message `bson:"last_message"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %w", err)
	}

	result := make(LastMessages, len(rows))
	for _, row := range rows {
		result[row.CounterpartID] = row.LastMessage
	}
	return result, nil
}
