package jobs

import (
	"context"
	"time"
)

// Store defines posting persistence.
type Store interface {
	// Get retrieves a posting by id. Returns ErrJobNotFound if absent.
	Get(ctx context.Context, jobID string) (*Job, error)

	// Create stores a new posting.
	Create(ctx context.Context, job *Job) error

	// Update overwrites the caller-editable fields of a posting.
	Update(ctx context.Context, jobID string, draft Draft) error

	// SetStatus transitions the posting's moderation status. A non-nil
	// approvedAt is recorded alongside.
	SetStatus(ctx context.Context, jobID string, status JobStatus, approvedAt *time.Time) error

	// List returns postings matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]Job, error)

	// ListByRecruiter returns the recruiter's own postings, newest first.
	ListByRecruiter(ctx context.Context, recruiterID string) ([]Job, error)

	// CountByStatus returns the number of postings per status. An empty
	// status counts everything.
	CountByStatus(ctx context.Context, status JobStatus) (int64, error)
}
