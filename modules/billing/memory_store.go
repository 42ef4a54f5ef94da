package billing

import (
	"context"
	"sync"
	"time"
)

// MemoryEntitlementStore is an in-memory EntitlementStore for tests.
type MemoryEntitlementStore struct {
	mu      sync.Mutex
	records map[string]*Entitlement
}

// NewMemoryEntitlementStore creates an empty in-memory entitlement store.
func NewMemoryEntitlementStore() *MemoryEntitlementStore {
	return &MemoryEntitlementStore{records: make(map[string]*Entitlement)}
}

func (s *MemoryEntitlementStore) Get(_ context.Context, accountID string) (*Entitlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[accountID]
	if !ok {
		return nil, ErrEntitlementNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *MemoryEntitlementStore) Create(_ context.Context, entitlement *Entitlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entitlement
	s.records[entitlement.AccountID] = &copied
	return nil
}

func (s *MemoryEntitlementStore) IncrementUsage(_ context.Context, accountID string, limit int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[accountID]
	if !ok || record.UsageCount >= limit {
		return false, nil
	}
	record.UsageCount++
	return true, nil
}

func (s *MemoryEntitlementStore) Activate(_ context.Context, accountID, plan string, windowStart, windowEnd time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[accountID]
	if !ok {
		record = &Entitlement{AccountID: accountID}
		s.records[accountID] = record
	}
	record.Plan = plan
	record.Status = StatusActive
	record.WindowStart = &windowStart
	record.WindowEnd = &windowEnd
	record.UsageCount = 0
	return nil
}

// MemoryOrderStore is an in-memory OrderStore for tests.
type MemoryOrderStore struct {
	mu     sync.Mutex
	orders map[string]*PendingOrder
}

// NewMemoryOrderStore creates an empty in-memory order store.
func NewMemoryOrderStore() *MemoryOrderStore {
	return &MemoryOrderStore{orders: make(map[string]*PendingOrder)}
}

func (s *MemoryOrderStore) Get(_ context.Context, orderID string) (*PendingOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *MemoryOrderStore) Create(_ context.Context, order *PendingOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *order
	s.orders[order.OrderID] = &copied
	return nil
}

func (s *MemoryOrderStore) MarkActivated(_ context.Context, orderID string, status OrderStatus, providerPaymentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	if !ok || order.Status != OrderCreated {
		return false, nil
	}
	order.Status = status
	order.ProviderPaymentID = providerPaymentID
	return true, nil
}
