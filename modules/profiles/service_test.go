package profiles_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobdeskhq/jobdesk/modules/profiles"
)

func TestServiceSeekerProfile(t *testing.T) {
	t.Parallel()

	svc := profiles.NewService(profiles.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.GetSeeker(ctx, "user_1")
	require.ErrorIs(t, err, profiles.ErrProfileNotFound)

	err = svc.UpdateSeeker(ctx, "user_1", profiles.SeekerProfile{
		AccountID: "someone_else",
		Skills:    []string{"go", "python"},
		Location:  "Pune",
	})
	require.NoError(t, err)

	profile, err := svc.GetSeeker(ctx, "user_1")
	require.NoError(t, err)
	// The caller's id always wins over whatever was in the payload.
	require.Equal(t, "user_1", profile.AccountID)
	require.Equal(t, []string{"go", "python"}, profile.Skills)
	require.NotNil(t, profile.PreferredJobTypes)
}

func TestServiceRecruiterProfile(t *testing.T) {
	t.Parallel()

	svc := profiles.NewService(profiles.NewMemoryStore())
	ctx := context.Background()

	err := svc.UpdateRecruiter(ctx, "rec_1", profiles.RecruiterProfile{
		CompanyName:    "Acme",
		CompanyWebsite: "https://acme.example",
	})
	require.NoError(t, err)

	profile, err := svc.GetRecruiter(ctx, "rec_1")
	require.NoError(t, err)
	require.Equal(t, "rec_1", profile.AccountID)
	require.Equal(t, "Acme", profile.CompanyName)
}

func TestServiceEnsureDefaults(t *testing.T) {
	t.Parallel()

	store := profiles.NewMemoryStore()
	svc := profiles.NewService(store)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx, "user_1", "job_seeker"))
	profile, err := svc.GetSeeker(ctx, "user_1")
	require.NoError(t, err)
	require.Empty(t, profile.Skills)

	// A second call leaves an existing profile alone.
	require.NoError(t, svc.UpdateSeeker(ctx, "user_1", profiles.SeekerProfile{Skills: []string{"go"}}))
	require.NoError(t, svc.EnsureDefaults(ctx, "user_1", "job_seeker"))
	profile, err = svc.GetSeeker(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, []string{"go"}, profile.Skills)

	require.NoError(t, svc.EnsureDefaults(ctx, "rec_1", "recruiter"))
	_, err = svc.GetRecruiter(ctx, "rec_1")
	require.NoError(t, err)

	// Admin accounts get no profile.
	require.NoError(t, svc.EnsureDefaults(ctx, "adm_1", "admin"))
}
