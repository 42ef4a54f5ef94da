package billing

import (
	"context"
	"time"
)

// EntitlementStore defines entitlement persistence. One record per
// recruiter account, addressed by account id.
//
// Mutations are expressed as single conditional updates, never
// read-modify-write, because concurrent requests for the same account are
// expected.
type EntitlementStore interface {
	// Get retrieves the entitlement for an account.
	// Returns ErrEntitlementNotFound if no record exists.
	Get(ctx context.Context, accountID string) (*Entitlement, error)

	// Create stores a fresh entitlement record.
	Create(ctx context.Context, entitlement *Entitlement) error

	// IncrementUsage atomically increments the usage counter, but only
	// while it is below limit. It reports whether a slot was taken. Two
	// concurrent callers racing for the last slot must not both succeed.
	IncrementUsage(ctx context.Context, accountID string, limit int64) (bool, error)

	// Activate unconditionally overwrites plan, status and window, and
	// resets the usage counter to zero. This is the only reset point.
	Activate(ctx context.Context, accountID, plan string, windowStart, windowEnd time.Time) error
}

// OrderStore defines pending order persistence.
type OrderStore interface {
	// Get retrieves an order by its provider-facing order id.
	// Returns ErrOrderNotFound if no record exists.
	Get(ctx context.Context, orderID string) (*PendingOrder, error)

	// Create stores a new pending order.
	Create(ctx context.Context, order *PendingOrder) error

	// MarkActivated transitions the order out of the created state,
	// recording the provider's payment id. The transition happens at most
	// once; it reports false when the order already left the created state,
	// which makes retried verification callbacks safely replayable.
	MarkActivated(ctx context.Context, orderID string, status OrderStatus, providerPaymentID string) (bool, error)
}
