package profiles

import "context"

// Service implements profile operations. Writes always carry the caller's
// account id, so a profile can never be upserted for someone else.
type Service struct {
	store Store
}

// NewService creates the profiles service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetSeeker retrieves a seeker profile by account id.
func (s *Service) GetSeeker(ctx context.Context, accountID string) (*SeekerProfile, error) {
	return s.store.GetSeeker(ctx, accountID)
}

// UpdateSeeker upserts the caller's seeker profile.
func (s *Service) UpdateSeeker(ctx context.Context, accountID string, profile SeekerProfile) error {
	profile.AccountID = accountID
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.PreferredJobTypes == nil {
		profile.PreferredJobTypes = []string{}
	}
	return s.store.UpsertSeeker(ctx, &profile)
}

// GetRecruiter retrieves a recruiter profile by account id.
func (s *Service) GetRecruiter(ctx context.Context, accountID string) (*RecruiterProfile, error) {
	return s.store.GetRecruiter(ctx, accountID)
}

// UpdateRecruiter upserts the caller's recruiter profile.
func (s *Service) UpdateRecruiter(ctx context.Context, accountID string, profile RecruiterProfile) error {
	profile.AccountID = accountID
	return s.store.UpsertRecruiter(ctx, &profile)
}

// EnsureDefaults seeds an empty profile for a freshly registered account.
// Existing records are left untouched.
func (s *Service) EnsureDefaults(ctx context.Context, accountID, role string) error {
	switch role {
	case "job_seeker":
		if _, err := s.store.GetSeeker(ctx, accountID); err == nil {
			return nil
		}
		return s.store.UpsertSeeker(ctx, &SeekerProfile{
			AccountID:         accountID,
			Skills:            []string{},
			PreferredJobTypes: []string{},
		})
	case "recruiter":
		if _, err := s.store.GetRecruiter(ctx, accountID); err == nil {
			return nil
		}
		return s.store.UpsertRecruiter(ctx, &RecruiterProfile{AccountID: accountID})
	}
	return nil
}
