package billing_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jobdeskhq/jobdesk/modules/billing"
)

func activeEntitlement(t *testing.T, store *billing.MemoryEntitlementStore, accountID, plan string) {
	t.Helper()
	start := time.Now().UTC()
	require.NoError(t, store.Activate(context.Background(), accountID, plan, start, start.Add(30*24*time.Hour)))
}

func TestQuotaGateAdmit(t *testing.T) {
	t.Parallel()

	t.Run("free plan admits a single posting without activation", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		require.NoError(t, store.Create(context.Background(), &billing.Entitlement{
			AccountID: "user_1",
			Plan:      billing.PlanFree,
			Status:    billing.StatusInactive,
		}))
		gate := billing.NewQuotaGate(store)

		require.NoError(t, gate.Admit(context.Background(), "user_1"))

		err := gate.Admit(context.Background(), "user_1")
		require.ErrorIs(t, err, billing.ErrQuotaExceeded)

		var quotaErr *billing.QuotaExceededError
		require.ErrorAs(t, err, &quotaErr)
		require.Equal(t, billing.PlanFree, quotaErr.Plan)
		require.EqualValues(t, 1, quotaErr.Limit)
	})

	t.Run("missing entitlement seeded with the free limit", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		gate := billing.NewQuotaGate(store)

		require.NoError(t, gate.Admit(context.Background(), "user_unknown"))

		entitlement, err := store.Get(context.Background(), "user_unknown")
		require.NoError(t, err)
		require.Equal(t, billing.PlanFree, entitlement.Plan)
		require.EqualValues(t, 1, entitlement.UsageCount)

		require.ErrorIs(t, gate.Admit(context.Background(), "user_unknown"), billing.ErrQuotaExceeded)
	})

	t.Run("legacy plan without activation rejected", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		require.NoError(t, store.Create(context.Background(), &billing.Entitlement{
			AccountID: "user_1",
			Plan:      "legacy_gold",
			Status:    billing.StatusInactive,
		}))
		gate := billing.NewQuotaGate(store)

		err := gate.Admit(context.Background(), "user_1")
		require.ErrorIs(t, err, billing.ErrSubscriptionInactive)
	})

	t.Run("legacy plan never grants a slot", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		activeEntitlement(t, store, "user_1", "legacy_gold")
		gate := billing.NewQuotaGate(store)

		err := gate.Admit(context.Background(), "user_1")
		require.ErrorIs(t, err, billing.ErrQuotaExceeded)

		var quotaErr *billing.QuotaExceededError
		require.ErrorAs(t, err, &quotaErr)
		require.Equal(t, "legacy_gold", quotaErr.Plan)
		require.EqualValues(t, 0, quotaErr.Limit)
	})

	t.Run("inactive paid plan rejected before quota", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		require.NoError(t, store.Create(context.Background(), &billing.Entitlement{
			AccountID: "user_1",
			Plan:      billing.PlanBasic,
			Status:    billing.StatusInactive,
		}))
		gate := billing.NewQuotaGate(store)

		err := gate.Admit(context.Background(), "user_1")
		require.ErrorIs(t, err, billing.ErrSubscriptionInactive)
	})

	t.Run("elapsed window rejected even when flag says active", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		start := time.Now().Add(-60 * 24 * time.Hour)
		require.NoError(t, store.Activate(context.Background(), "user_1", billing.PlanBasic, start, start.Add(30*24*time.Hour)))
		gate := billing.NewQuotaGate(store)

		err := gate.Admit(context.Background(), "user_1")
		require.ErrorIs(t, err, billing.ErrSubscriptionInactive)
	})

	t.Run("admits until the plan limit then reports the limit", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		activeEntitlement(t, store, "user_1", billing.PlanBasic)
		gate := billing.NewQuotaGate(store)

		for range 10 {
			require.NoError(t, gate.Admit(context.Background(), "user_1"))
		}

		err := gate.Admit(context.Background(), "user_1")
		require.ErrorIs(t, err, billing.ErrQuotaExceeded)

		var quotaErr *billing.QuotaExceededError
		require.ErrorAs(t, err, &quotaErr)
		require.EqualValues(t, 10, quotaErr.Limit)
		require.Equal(t, billing.PlanBasic, quotaErr.Plan)
	})

	t.Run("activation resets the counter", func(t *testing.T) {
		t.Parallel()

		store := billing.NewMemoryEntitlementStore()
		activeEntitlement(t, store, "user_1", billing.PlanBasic)
		gate := billing.NewQuotaGate(store)

		for range 10 {
			require.NoError(t, gate.Admit(context.Background(), "user_1"))
		}
		require.ErrorIs(t, gate.Admit(context.Background(), "user_1"), billing.ErrQuotaExceeded)

		activeEntitlement(t, store, "user_1", billing.PlanBasic)
		require.NoError(t, gate.Admit(context.Background(), "user_1"))
	})
}

func TestQuotaGateConcurrentAdmission(t *testing.T) {
	t.Parallel()

	store := billing.NewMemoryEntitlementStore()
	activeEntitlement(t, store, "user_1", billing.PlanBasic)
	gate := billing.NewQuotaGate(store)

	const attempts = 50

	var admitted atomic.Int64
	var wg sync.WaitGroup
	wg.Add(attempts)
	for range attempts {
		go func() {
			defer wg.Done()
			if err := gate.Admit(context.Background(), "user_1"); err == nil {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	// The basic plan holds 10 slots; exactly 10 of the racing callers win.
	require.EqualValues(t, 10, admitted.Load())

	entitlement, err := store.Get(context.Background(), "user_1")
	require.NoError(t, err)
	require.EqualValues(t, 10, entitlement.UsageCount)
}
