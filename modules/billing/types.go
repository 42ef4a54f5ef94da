package billing

import "time"

// EntitlementStatus is the stored subscription state.
type EntitlementStatus string

const (
	StatusInactive EntitlementStatus = "inactive"
	StatusActive   EntitlementStatus = "active"
	StatusExpired  EntitlementStatus = "expired"
)

// Entitlement is the per-recruiter subscription record: current plan,
// activation window and usage counter. Usage is incremented only by the
// quota gate and reset only on (re)activation.
type Entitlement struct {
	AccountID   string            `bson:"user_id" json:"user_id"`
	Plan        string            `bson:"subscription_plan" json:"subscription_plan"`
	Status      EntitlementStatus `bson:"subscription_status" json:"subscription_status"`
	WindowStart *time.Time        `bson:"subscription_start,omitempty" json:"subscription_start,omitempty"`
	WindowEnd   *time.Time        `bson:"subscription_end,omitempty" json:"subscription_end,omitempty"`
	UsageCount  int64             `bson:"jobs_posted_this_month" json:"jobs_posted_this_month"`
}

// ActiveAt reports the effective status at the given instant: the stored
// flag must say active AND the window must not have elapsed. Expiry is
// evaluated lazily; the stored record is never corrected on read.
func (e *Entitlement) ActiveAt(now time.Time) bool {
	if e.Status != StatusActive || e.WindowEnd == nil {
		return false
	}
	return e.WindowEnd.UTC().After(now.UTC())
}

// OrderStatus tracks a pending order's lifecycle. An order leaves the
// created state at most once.
type OrderStatus string

const (
	OrderCreated             OrderStatus = "created"
	OrderActivated           OrderStatus = "activated"
	OrderActivatedUnverified OrderStatus = "activated_unverified"
)

// PendingOrder is a created-but-not-yet-verified payment intent.
type PendingOrder struct {
	ID                string      `bson:"payment_id"`
	OrderID           string      `bson:"order_id"`
	AccountID         string      `bson:"user_id"`
	Plan              string      `bson:"subscription_plan"`
	Amount            int64       `bson:"amount"`
	Status            OrderStatus `bson:"status"`
	ProviderPaymentID string      `bson:"provider_payment_id,omitempty"`
	CreatedAt         time.Time   `bson:"created_at"`
}

// OrderView is what the caller needs to collect payment: the order id, the
// amount due and the public key material for the provider's checkout. Demo
// orders carry a placeholder key and a distinctly prefixed id.
type OrderView struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
	DemoMode bool   `json:"demo_mode"`
}

// ActivationResult reports a successful entitlement activation.
type ActivationResult struct {
	Plan       string    `json:"plan"`
	ValidUntil time.Time `json:"valid_until"`
	DemoMode   bool      `json:"demo_mode,omitempty"`
}
