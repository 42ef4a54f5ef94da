package jobs

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewMemoryStore creates an empty in-memory job store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]*Job)}
}

func (s *MemoryStore) Get(_ context.Context, jobID string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (s *MemoryStore) Create(_ context.Context, job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *job
	s.jobs[job.ID] = &copied
	return nil
}

func (s *MemoryStore) Update(_ context.Context, jobID string, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.Title = draft.Title
	job.Description = draft.Description
	job.CompanyName = draft.CompanyName
	job.Location = draft.Location
	job.SalaryMin = draft.SalaryMin
	job.SalaryMax = draft.SalaryMax
	job.Type = draft.Type
	job.RequiredSkills = draft.RequiredSkills
	job.ExperienceRequired = draft.ExperienceRequired
	return nil
}

func (s *MemoryStore) SetStatus(_ context.Context, jobID string, status JobStatus, approvedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return ErrJobNotFound
	}
	job.Status = status
	if approvedAt != nil {
		job.ApprovedAt = approvedAt
	}
	return nil
}

func (s *MemoryStore) List(_ context.Context, filter Filter) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Job
	for _, job := range s.jobs {
		if matches(job, filter) {
			result = append(result, *job)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *MemoryStore) ListByRecruiter(_ context.Context, recruiterID string) ([]Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Job
	for _, job := range s.jobs {
		if job.RecruiterID == recruiterID {
			result = append(result, *job)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (s *MemoryStore) CountByStatus(_ context.Context, status JobStatus) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, job := range s.jobs {
		if status == "" || job.Status == status {
			count++
		}
	}
	return count, nil
}

func matches(job *Job, filter Filter) bool {
	if filter.Status != "" && job.Status != filter.Status {
		return false
	}
	if filter.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.Type != "" && job.Type != filter.Type {
		return false
	}
	if len(filter.Skills) > 0 {
		found := false
		for _, skill := range filter.Skills {
			if slices.Contains(job.RequiredSkills, skill) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.SalaryMin > 0 && (job.SalaryMin == nil || *job.SalaryMin < filter.SalaryMin) {
		return false
	}
	return true
}

func sortNewestFirst(jobs []Job) {
	slices.SortFunc(jobs, func(a, b Job) int {
		return b.PostedAt.Compare(a.PostedAt)
	})
}
