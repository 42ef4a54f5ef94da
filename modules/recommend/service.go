package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jobdeskhq/jobdesk/modules/jobs"
	"github.com/jobdeskhq/jobdesk/modules/profiles"
)

const maxRecommendations = 5

// ErrProfileRequired means the seeker has no profile to match against.
var ErrProfileRequired = errors.New("recommend: seeker profile not found")

// JobDirectory lists postings eligible for recommendation.
type JobDirectory interface {
	List(ctx context.Context, filter jobs.Filter) ([]jobs.Job, error)
}

// ProfileDirectory resolves the seeker's profile.
type ProfileDirectory interface {
	GetSeeker(ctx context.Context, accountID string) (*profiles.SeekerProfile, error)
}

// Ranker orders postings by fit for a profile and returns the chosen job
// ids, best first.
type Ranker interface {
	Rank(ctx context.Context, profile *profiles.SeekerProfile, candidates []jobs.Job) ([]string, error)
}

// Service recommends postings to seekers. The ranker does the heavy
// lifting; when it fails the service degrades to skill-overlap scoring
// rather than returning an error.
type Service struct {
	jobs     JobDirectory
	profiles ProfileDirectory
	ranker   Ranker
	logger   *slog.Logger
}

// ServiceOption configures optional service behaviour.
type ServiceOption func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates the recommendation service. A nil ranker goes straight
// to skill-overlap matching.
func NewService(jobDir JobDirectory, profileDir ProfileDirectory, ranker Ranker, opts ...ServiceOption) *Service {
	s := &Service{
		jobs:     jobDir,
		profiles: profileDir,
		ranker:   ranker,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend returns up to five approved postings matched to the seeker.
func (s *Service) Recommend(ctx context.Context, seekerID string) ([]jobs.Job, error) {
	profile, err := s.profiles.GetSeeker(ctx, seekerID)
	if err != nil {
		if errors.Is(err, profiles.ErrProfileNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	candidates, err := s.jobs.List(ctx, jobs.Filter{Status: jobs.StatusApproved})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	if len(candidates) == 0 {
		return []jobs.Job{}, nil
	}

	if s.ranker != nil {
		ranked, err := s.rank(ctx, profile, candidates)
		if err == nil {
			return ranked, nil
		}
		s.logger.WarnContext(ctx, "ranker failed, falling back to skill matching",
			slog.String("account_id", seekerID),
			slog.Any("error", err))
	}

	return matchBySkills(profile, candidates), nil
}

func (s *Service) rank(ctx context.Context, profile *profiles.SeekerProfile, candidates []jobs.Job) ([]jobs.Job, error) {
	ids, err := s.ranker.Rank(ctx, profile, candidates)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]jobs.Job, len(candidates))
	for _, job := range candidates {
		byID[job.ID] = job
	}

	result := make([]jobs.Job, 0, maxRecommendations)
	for _, id := range ids {
		if job, ok := byID[id]; ok {
			result = append(result, job)
			if len(result) == maxRecommendations {
				break
			}
		}
	}
	if len(result) == 0 {
		return nil, errors.New("recommend: ranker returned no known job ids")
	}
	return result, nil
}

// matchBySkills scores each posting by how many required skills the seeker
// has and keeps the top scorers. Postings with no overlap are dropped.
func matchBySkills(profile *profiles.SeekerProfile, candidates []jobs.Job) []jobs.Job {
	type scored struct {
		score int
		job   jobs.Job
	}

	var matched []scored
	for _, job := range candidates {
		score := 0
		for _, skill := range job.RequiredSkills {
			if slices.Contains(profile.Skills, skill) {
				score++
			}
		}
		if score > 0 {
			matched = append(matched, scored{score: score, job: job})
		}
	}

	slices.SortStableFunc(matched, func(a, b scored) int {
		return b.score - a.score
	})

	result := make([]jobs.Job, 0, maxRecommendations)
	for _, m := range matched {
		result = append(result, m.job)
		if len(result) == maxRecommendations {
			break
		}
	}
	return result
}
