package profiles

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu         sync.RWMutex
	seekers    map[string]*SeekerProfile
	recruiters map[string]*RecruiterProfile
}

// NewMemoryStore creates an empty in-memory profile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seekers:    make(map[string]*SeekerProfile),
		recruiters: make(map[string]*RecruiterProfile),
	}
}

func (s *MemoryStore) GetSeeker(_ context.Context, accountID string) (*SeekerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.seekers[accountID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *MemoryStore) UpsertSeeker(_ context.Context, profile *SeekerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *profile
	s.seekers[profile.AccountID] = &copied
	return nil
}

func (s *MemoryStore) GetRecruiter(_ context.Context, accountID string) (*RecruiterProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.recruiters[accountID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *MemoryStore) UpsertRecruiter(_ context.Context, profile *RecruiterProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *profile
	s.recruiters[profile.AccountID] = &copied
	return nil
}
