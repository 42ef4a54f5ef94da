package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	entitlementsCollection = "users"
	ordersCollection       = "payments"
)

// MongoEntitlementStore persists entitlement fields on the user document,
// one record per account.
type MongoEntitlementStore struct {
	col *mongo.Collection
}

// NewMongoEntitlementStore creates a MongoDB-backed entitlement store.
func NewMongoEntitlementStore(db *mongo.Database) *MongoEntitlementStore {
	return &MongoEntitlementStore{col: db.Collection(entitlementsCollection)}
}

func (s *MongoEntitlementStore) Get(ctx context.Context, accountID string) (*Entitlement, error) {
	var entitlement Entitlement
	err := s.col.FindOne(ctx, bson.M{"user_id": accountID}).Decode(&entitlement)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEntitlementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find entitlement: %w", err)
	}
	return &entitlement, nil
}

func (s *MongoEntitlementStore) Create(ctx context.Context, entitlement *Entitlement) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": entitlement.AccountID},
		bson.M{"$set": bson.M{
			"subscription_plan":      entitlement.Plan,
			"subscription_status":    entitlement.Status,
			"jobs_posted_this_month": entitlement.UsageCount,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to create entitlement: %w", err)
	}
	return nil
}

// IncrementUsage is a single conditional update: the filter requires the
// counter to still be below the limit, so the database serializes racing
// callers and at most limit slots are ever granted.
func (s *MongoEntitlementStore) IncrementUsage(ctx context.Context, accountID string, limit int64) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{
			"user_id":                accountID,
			"jobs_posted_this_month": bson.M{"$lt": limit},
		},
		bson.M{"$inc": bson.M{"jobs_posted_this_month": 1}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to increment usage: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (s *MongoEntitlementStore) Activate(ctx context.Context, accountID, plan string, windowStart, windowEnd time.Time) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": accountID},
		bson.M{"$set": bson.M{
			"subscription_plan":      plan,
			"subscription_status":    StatusActive,
			"subscription_start":     windowStart,
			"subscription_end":       windowEnd,
			"jobs_posted_this_month": int64(0),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to activate entitlement: %w", err)
	}
	return nil
}

// MongoOrderStore persists pending payment orders.
type MongoOrderStore struct {
	col *mongo.Collection
}

// NewMongoOrderStore creates a MongoDB-backed order store.
func NewMongoOrderStore(db *mongo.Database) *MongoOrderStore {
	return &MongoOrderStore{col: db.Collection(ordersCollection)}
}

func (s *MongoOrderStore) Get(ctx context.Context, orderID string) (*PendingOrder, error) {
	var order PendingOrder
	err := s.col.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (s *MongoOrderStore) Create(ctx context.Context, order *PendingOrder) error {
	if _, err := s.col.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// MarkActivated transitions the order out of the created state via a
// filtered update, so a replayed callback matches zero documents instead of
// re-activating.
func (s *MongoOrderStore) MarkActivated(ctx context.Context, orderID string, status OrderStatus, providerPaymentID string) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"order_id": orderID, "status": OrderCreated},
		bson.M{"$set": bson.M{
			"status":              status,
			"provider_payment_id": providerPaymentID,
			"verified_at":         time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark order activated: %w", err)
	}
	return res.ModifiedCount > 0, nil
}
