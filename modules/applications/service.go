package applications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobdeskhq/jobdesk/modules/jobs"
	"github.com/jobdeskhq/jobdesk/modules/profiles"
	"github.com/jobdeskhq/jobdesk/pkg/shortid"
)

// JobDirectory resolves postings for application checks and enrichment.
type JobDirectory interface {
	Get(ctx context.Context, jobID string) (*jobs.Job, error)
}

// ProfileDirectory resolves candidate profiles for recruiter views.
type ProfileDirectory interface {
	GetSeeker(ctx context.Context, accountID string) (*profiles.SeekerProfile, error)
}

// Service implements application operations.
type Service struct {
	store    Store
	jobs     JobDirectory
	profiles ProfileDirectory
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

// NewService creates the applications service.
func NewService(store Store, jobDir JobDirectory, profileDir ProfileDirectory, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		jobs:     jobDir,
		profiles: profileDir,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply files an application for the seeker. Each seeker applies to a
// posting at most once.
func (s *Service) Apply(ctx context.Context, seekerID, jobID, coverLetter string) (*Application, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applied, err := s.store.Exists(ctx, jobID, seekerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	now := time.Now().UTC()
	application := &Application{
		ID:          shortid.New("app"),
		JobID:       jobID,
		SeekerID:    seekerID,
		RecruiterID: job.RecruiterID,
		Status:      StatusPending,
		CoverLetter: coverLetter,
		AppliedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, application); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.InfoContext(ctx, "application filed",
		slog.String("application_id", application.ID),
		slog.String("job_id", jobID))

	return application, nil
}

// ListMine returns the seeker's applications enriched with their postings.
// A posting that vanished leaves the application bare rather than failing
// the listing.
func (s *Service) ListMine(ctx context.Context, seekerID string) ([]SeekerView, error) {
	list, err := s.store.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	views := make([]SeekerView, 0, len(list))
	for _, application := range list {
		view := SeekerView{Application: application}
		if job, err := s.jobs.Get(ctx, application.JobID); err == nil {
			view.Job = job
		}
		views = append(views, view)
	}
	return views, nil
}

// ListForJob returns a posting's applications for its owning recruiter,
// enriched with candidate profiles.
func (s *Service) ListForJob(ctx context.Context, recruiterID, jobID string) ([]RecruiterView, error) {
	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterID != recruiterID {
		return nil, ErrNotRecruiter
	}

	list, err := s.store.ListByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	views := make([]RecruiterView, 0, len(list))
	for _, application := range list {
		view := RecruiterView{Application: application}
		if profile, err := s.profiles.GetSeeker(ctx, application.SeekerID); err == nil {
			view.Profile = profile
		} else if !errors.Is(err, profiles.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to load candidate profile: %w", err)
		}
		views = append(views, view)
	}
	return views, nil
}

// SetStatus transitions an application's lifecycle status. Only the
// recruiter the application was filed against may do so.
func (s *Service) SetStatus(ctx context.Context, recruiterID, applicationID string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	application, err := s.store.Get(ctx, applicationID)
	if err != nil {
		return err
	}
	if application.RecruiterID != recruiterID {
		return ErrNotRecruiter
	}

	if err := s.store.SetStatus(ctx, applicationID, status); err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}
	return nil
}
