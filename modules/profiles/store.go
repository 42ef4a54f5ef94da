package profiles

import "context"

// Store defines profile persistence. Updates are upserts addressed by
// account id.
type Store interface {
	// GetSeeker retrieves a seeker profile.
	// Returns ErrProfileNotFound if absent.
	GetSeeker(ctx context.Context, accountID string) (*SeekerProfile, error)

	// UpsertSeeker creates or overwrites the seeker profile.
	UpsertSeeker(ctx context.Context, profile *SeekerProfile) error

	// GetRecruiter retrieves a recruiter profile.
	// Returns ErrProfileNotFound if absent.
	GetRecruiter(ctx context.Context, accountID string) (*RecruiterProfile, error)

	// UpsertRecruiter creates or overwrites the recruiter profile.
	UpsertRecruiter(ctx context.Context, profile *RecruiterProfile) error
}
