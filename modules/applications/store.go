package applications

import "context"

// Store defines application persistence.
type Store interface {
	// Get retrieves an application by id.
	// Returns ErrApplicationNotFound if absent.
	Get(ctx context.Context, applicationID string) (*Application, error)

	// Create stores a new application.
	Create(ctx context.Context, application *Application) error

	// Exists reports whether the seeker already applied to the job.
	Exists(ctx context.Context, jobID, seekerID string) (bool, error)

	// ListBySeeker returns the seeker's applications, newest first.
	ListBySeeker(ctx context.Context, seekerID string) ([]Application, error)

	// ListByJob returns all applications for a posting, newest first.
	ListByJob(ctx context.Context, jobID string) ([]Application, error)

	// SetStatus updates the lifecycle status and bumps updated_at.
	SetStatus(ctx context.Context, applicationID string, status Status) error

	// CountByStatus returns the number of applications per status. An
	// empty status counts everything.
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
