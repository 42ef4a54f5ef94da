package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jobdeskhq/jobdesk/pkg/shortid"
)

// Gate admits quota-bearing actions for an account.
type Gate interface {
	Admit(ctx context.Context, accountID string) error
}

// Service implements posting operations. Creation is gated on the
// recruiter's entitlement.
type Service struct {
	store  Store
	gate   Gate
	logger *slog.Logger
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

// NewService creates the jobs service.
func NewService(store Store, gate Gate, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		gate:   gate,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateDraft(draft Draft) error {
	if strings.TrimSpace(draft.Title) == "" ||
		strings.TrimSpace(draft.Description) == "" ||
		strings.TrimSpace(draft.CompanyName) == "" ||
		strings.TrimSpace(draft.Location) == "" {
		return ErrMissingFields
	}
	if !draft.Type.Valid() {
		return ErrInvalidJobType
	}
	return nil
}

// Create admits the recruiter through the quota gate and stores a new
// pending posting. Gate errors pass through untouched so the boundary can
// map them.
func (s *Service) Create(ctx context.Context, recruiterID string, draft Draft) (*Job, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	if err := s.gate.Admit(ctx, recruiterID); err != nil {
		return nil, err
	}

	skills := draft.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	job := &Job{
		ID:                 shortid.New("job"),
		RecruiterID:        recruiterID,
		Title:              draft.Title,
		Description:        draft.Description,
		CompanyName:        draft.CompanyName,
		Location:           draft.Location,
		SalaryMin:          draft.SalaryMin,
		SalaryMax:          draft.SalaryMax,
		Type:               draft.Type,
		RequiredSkills:     skills,
		ExperienceRequired: draft.ExperienceRequired,
		Status:             StatusPending,
		PostedAt:           time.Now().UTC(),
	}

	if err := s.store.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.InfoContext(ctx, "job posted",
		slog.String("job_id", job.ID),
		slog.String("recruiter_id", recruiterID))

	return job, nil
}

// Get retrieves a single posting.
func (s *Service) Get(ctx context.Context, jobID string) (*Job, error) {
	return s.store.Get(ctx, jobID)
}

// List returns postings matching the filter. An empty status defaults to
// approved so the public listing never leaks unmoderated postings.
func (s *Service) List(ctx context.Context, filter Filter) ([]Job, error) {
	if filter.Status == "" {
		filter.Status = StatusApproved
	}
	return s.store.List(ctx, filter)
}

// ListMine returns the recruiter's own postings regardless of status.
func (s *Service) ListMine(ctx context.Context, recruiterID string) ([]Job, error) {
	return s.store.ListByRecruiter(ctx, recruiterID)
}

// Update overwrites an owned posting's editable fields.
func (s *Service) Update(ctx context.Context, recruiterID, jobID string, draft Draft) error {
	if err := validateDraft(draft); err != nil {
		return err
	}
	if err := s.requireOwner(ctx, recruiterID, jobID); err != nil {
		return err
	}
	if err := s.store.Update(ctx, jobID, draft); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// Close retires an owned posting. The record is kept for existing
// applications; only the status changes.
func (s *Service) Close(ctx context.Context, recruiterID, jobID string) error {
	if err := s.requireOwner(ctx, recruiterID, jobID); err != nil {
		return err
	}
	if err := s.store.SetStatus(ctx, jobID, StatusClosed, nil); err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	return nil
}

// Approve marks a posting approved and stamps the approval time. Caller
// authorization happens at the boundary.
func (s *Service) Approve(ctx context.Context, jobID string) error {
	if _, err := s.store.Get(ctx, jobID); err != nil {
		return err
	}
	now := time.Now().UTC()
	if err := s.store.SetStatus(ctx, jobID, StatusApproved, &now); err != nil {
		return fmt.Errorf("failed to approve job: %w", err)
	}
	return nil
}

// Reject marks a posting rejected.
func (s *Service) Reject(ctx context.Context, jobID string) error {
	if _, err := s.store.Get(ctx, jobID); err != nil {
		return err
	}
	if err := s.store.SetStatus(ctx, jobID, StatusRejected, nil); err != nil {
		return fmt.Errorf("failed to reject job: %w", err)
	}
	return nil
}

func (s *Service) requireOwner(ctx context.Context, recruiterID, jobID string) error {
	job, err := s.store.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.RecruiterID != recruiterID {
		return ErrNotOwner
	}
	return nil
}
