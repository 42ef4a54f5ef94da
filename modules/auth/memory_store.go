package auth

import (
	"context"
	"sync"
)

// MemoryAccountStore is an in-memory AccountStore for tests and local runs.
type MemoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
}

// NewMemoryAccountStore creates an empty in-memory account store.
func NewMemoryAccountStore() *MemoryAccountStore {
	return &MemoryAccountStore{accounts: make(map[string]Account)}
}

func (s *MemoryAccountStore) Find(ctx context.Context, accountID string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (s *MemoryAccountStore) FindByEmail(ctx context.Context, email string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, account := range s.accounts {
		if account.Email == email {
			return &account, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (s *MemoryAccountStore) Create(ctx context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == account.Email {
			return ErrEmailTaken
		}
	}
	s.accounts[account.ID] = *account
	return nil
}

func (s *MemoryAccountStore) UpdateProfile(ctx context.Context, accountID, name, picture string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	account.Name = name
	account.Picture = picture
	s.accounts[accountID] = account
	return nil
}

func (s *MemoryAccountStore) List(ctx context.Context) ([]Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (s *MemoryAccountStore) Delete(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, accountID)
	return nil
}

// MemorySessionStore is an in-memory SessionStore for tests and local runs.
type MemorySessionStore struct {
	mu      sync.RWMutex
	records map[string]SessionRecord
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{records: make(map[string]SessionRecord)}
}

func (s *MemorySessionStore) Find(ctx context.Context, token string) (*SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &record, nil
}

func (s *MemorySessionStore) Create(ctx context.Context, record *SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Token] = *record
	return nil
}

func (s *MemorySessionStore) DeleteAll(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, token)
	return nil
}
