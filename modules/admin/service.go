package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jobdeskhq/jobdesk/modules/applications"
	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/modules/jobs"
)

// AccountDirectory is the account surface the admin module manages.
type AccountDirectory interface {
	List(ctx context.Context) ([]auth.Account, error)
	Delete(ctx context.Context, accountID string) error
}

// JobBoard reads postings without the public approved-only default.
type JobBoard interface {
	List(ctx context.Context, filter jobs.Filter) ([]jobs.Job, error)
	CountByStatus(ctx context.Context, status jobs.JobStatus) (int64, error)
}

// Moderator transitions postings through moderation.
type Moderator interface {
	Approve(ctx context.Context, jobID string) error
	Reject(ctx context.Context, jobID string) error
}

// ApplicationCounter exposes application counts for analytics.
type ApplicationCounter interface {
	CountByStatus(ctx context.Context, status applications.Status) (int64, error)
}

// Service implements platform administration.
type Service struct {
	accounts   AccountDirectory
	board      JobBoard
	moderator  Moderator
	appCounter ApplicationCounter
	logger     *slog.Logger
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

// NewService creates the admin service.
func NewService(accounts AccountDirectory, board JobBoard, moderator Moderator, appCounter ApplicationCounter, opts ...ServiceOption) *Service {
	s := &Service{
		accounts:   accounts,
		board:      board,
		moderator:  moderator,
		appCounter: appCounter,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers returns every account as its public identity. Password hashes
// never leave the store.
func (s *Service) ListUsers(ctx context.Context) ([]auth.Identity, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	identities := make([]auth.Identity, 0, len(accounts))
	for _, account := range accounts {
		identities = append(identities, account.Identity())
	}
	return identities, nil
}

// DeleteUser removes an account. Their sessions become unresolvable and any
// signed token they still hold stops resolving on the next request.
func (s *Service) DeleteUser(ctx context.Context, accountID string) error {
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "account deleted", slog.String("account_id", accountID))
	return nil
}

// ListJobs returns postings in any moderation state, optionally narrowed
// to one status.
func (s *Service) ListJobs(ctx context.Context, status jobs.JobStatus) ([]jobs.Job, error) {
	return s.board.List(ctx, jobs.Filter{Status: status})
}

// ApproveJob clears a posting for public listing.
func (s *Service) ApproveJob(ctx context.Context, jobID string) error {
	return s.moderator.Approve(ctx, jobID)
}

// RejectJob declines a posting.
func (s *Service) RejectJob(ctx context.Context, jobID string) error {
	return s.moderator.Reject(ctx, jobID)
}

// UserCounts breaks accounts down by role.
type UserCounts struct {
	Total      int64 `json:"total"`
	JobSeekers int64 `json:"job_seekers"`
	Recruiters int64 `json:"recruiters"`
}

// JobCounts breaks postings down by moderation status.
type JobCounts struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
}

// ApplicationCounts breaks applications down by lifecycle status.
type ApplicationCounts struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
}

// Analytics is the platform-wide counter snapshot.
type Analytics struct {
	Users        UserCounts        `json:"users"`
	Jobs         JobCounts         `json:"jobs"`
	Applications ApplicationCounts `json:"applications"`
}

// GetAnalytics collects platform counters.
func (s *Service) GetAnalytics(ctx context.Context) (*Analytics, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var analytics Analytics
	analytics.Users.Total = int64(len(accounts))
	for _, account := range accounts {
		switch account.Role {
		case auth.RoleSeeker:
			analytics.Users.JobSeekers++
		case auth.RoleRecruiter:
			analytics.Users.Recruiters++
		}
	}

	if analytics.Jobs.Total, err = s.board.CountByStatus(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	if analytics.Jobs.Approved, err = s.board.CountByStatus(ctx, jobs.StatusApproved); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}
	if analytics.Jobs.Pending, err = s.board.CountByStatus(ctx, jobs.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count jobs: %w", err)
	}

	if analytics.Applications.Total, err = s.appCounter.CountByStatus(ctx, ""); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}
	if analytics.Applications.Pending, err = s.appCounter.CountByStatus(ctx, applications.StatusPending); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	return &analytics, nil
}
