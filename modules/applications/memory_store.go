package applications

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu           sync.RWMutex
	applications map[string]*Application
}

// NewMemoryStore creates an empty in-memory application store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{applications: make(map[string]*Application)}
}

func (s *MemoryStore) Get(_ context.Context, applicationID string) (*Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	application, ok := s.applications[applicationID]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	copied := *application
	return &copied, nil
}

func (s *MemoryStore) Create(_ context.Context, application *Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *application
	s.applications[application.ID] = &copied
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, jobID, seekerID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, application := range s.applications {
		if application.JobID == jobID && application.SeekerID == seekerID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ListBySeeker(_ context.Context, seekerID string) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Application
	for _, application := range s.applications {
		if application.SeekerID == seekerID {
			result = append(result, *application)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *MemoryStore) ListByJob(_ context.Context, jobID string) ([]Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Application
	for _, application := range s.applications {
		if application.JobID == jobID {
			result = append(result, *application)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *MemoryStore) SetStatus(_ context.Context, applicationID string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	application, ok := s.applications[applicationID]
	if !ok {
		return ErrApplicationNotFound
	}
	application.Status = status
	application.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) CountByStatus(_ context.Context, status Status) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, application := range s.applications {
		if status == "" || application.Status == status {
			count++
		}
	}
	return count, nil
}

func sortNewestFirst(applications []Application) {
	slices.SortFunc(applications, func(a, b Application) int {
		return b.AppliedAt.Compare(a.AppliedAt)
	})
}
