package billing

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// QuotaGate admits quota-bearing actions against the caller's entitlement.
// Admission order: active-status check (skipped for the zero-cost tier,
// which has no activation window), then the atomic usage increment. The
// increment and the limit check are a single conditional store operation,
// so concurrent callers can never push the counter past the plan limit.
type QuotaGate struct {
	plans        map[string]Plan
	entitlements EntitlementStore
	now          func() time.Time
}

// NewQuotaGate creates a gate over the default plan table.
func NewQuotaGate(entitlements EntitlementStore) *QuotaGate {
	return &QuotaGate{
		plans:        DefaultPlans(),
		entitlements: entitlements,
		now:          time.Now,
	}
}

// Admit consumes one unit of quota for the account, or explains why it
// cannot. A missing entitlement record is seeded as the free plan so its
// single slot can be taken through the same conditional increment.
func (g *QuotaGate) Admit(ctx context.Context, accountID string) error {
	entitlement, err := g.entitlements.Get(ctx, accountID)
	switch {
	case errors.Is(err, ErrEntitlementNotFound):
		entitlement = &Entitlement{AccountID: accountID, Plan: PlanFree, Status: StatusInactive}
		if err := g.entitlements.Create(ctx, entitlement); err != nil {
			return fmt.Errorf("failed to seed entitlement: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to load entitlement: %w", err)
	}

	plan, ok := g.plans[entitlement.Plan]
	if !ok {
		// Legacy plan id outside the table: zero slots, always rejected.
		plan = Plan{ID: entitlement.Plan, JobLimit: 0}
	}

	// The zero-cost tier has no activation window; only its limit applies.
	if plan.ID != PlanFree && !entitlement.ActiveAt(g.now()) {
		return ErrSubscriptionInactive
	}

	admitted, err := g.entitlements.IncrementUsage(ctx, accountID, plan.JobLimit)
	if err != nil {
		return fmt.Errorf("failed to consume quota: %w", err)
	}
	if !admitted {
		return &QuotaExceededError{Plan: plan.ID, Limit: plan.JobLimit}
	}
	return nil
}
