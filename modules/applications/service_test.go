package applications_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobdeskhq/jobdesk/modules/applications"
	"github.com/jobdeskhq/jobdesk/modules/jobs"
	"github.com/jobdeskhq/jobdesk/modules/profiles"
)

type fixture struct {
	svc      *applications.Service
	jobs     *jobs.MemoryStore
	profiles *profiles.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	jobStore := jobs.NewMemoryStore()
	profileStore := profiles.NewMemoryStore()
	return &fixture{
		svc:      applications.NewService(applications.NewMemoryStore(), jobStore, profileStore),
		jobs:     jobStore,
		profiles: profileStore,
	}
}

func (f *fixture) seedJob(t *testing.T, jobID, recruiterID string) {
	t.Helper()
	require.NoError(t, f.jobs.Create(context.Background(), &jobs.Job{
		ID:          jobID,
		RecruiterID: recruiterID,
		Title:       "Backend Engineer",
		Status:      jobs.StatusApproved,
	}))
}

func TestServiceApply(t *testing.T) {
	t.Parallel()

	t.Run("files a pending application", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.seedJob(t, "job_1", "rec_1")

		application, err := f.svc.Apply(context.Background(), "seeker_1", "job_1", "hello")
		require.NoError(t, err)
		require.Equal(t, applications.StatusPending, application.Status)
		require.Equal(t, "rec_1", application.RecruiterID)
		require.Equal(t, "hello", application.CoverLetter)
	})

	t.Run("second application rejected", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.seedJob(t, "job_1", "rec_1")

		_, err := f.svc.Apply(context.Background(), "seeker_1", "job_1", "")
		require.NoError(t, err)

		_, err = f.svc.Apply(context.Background(), "seeker_1", "job_1", "again")
		require.ErrorIs(t, err, applications.ErrAlreadyApplied)
	})

	t.Run("missing job not found", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, err := f.svc.Apply(context.Background(), "seeker_1", "job_missing", "")
		require.ErrorIs(t, err, jobs.ErrJobNotFound)
	})
}

func TestServiceListMine(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedJob(t, "job_1", "rec_1")

	_, err := f.svc.Apply(context.Background(), "seeker_1", "job_1", "")
	require.NoError(t, err)

	views, err := f.svc.ListMine(context.Background(), "seeker_1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Job)
	require.Equal(t, "Backend Engineer", views[0].Job.Title)

	views, err = f.svc.ListMine(context.Background(), "seeker_2")
	require.NoError(t, err)
	require.Empty(t, views)
}

func TestServiceListForJob(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedJob(t, "job_1", "rec_1")
	require.NoError(t, f.profiles.UpsertSeeker(context.Background(), &profiles.SeekerProfile{
		AccountID: "seeker_1",
		Skills:    []string{"go"},
	}))

	_, err := f.svc.Apply(context.Background(), "seeker_1", "job_1", "")
	require.NoError(t, err)

	t.Run("owner sees candidates with profiles", func(t *testing.T) {
		views, err := f.svc.ListForJob(context.Background(), "rec_1", "job_1")
		require.NoError(t, err)
		require.Len(t, views, 1)
		require.NotNil(t, views[0].Profile)
		require.Equal(t, []string{"go"}, views[0].Profile.Skills)
	})

	t.Run("other recruiter forbidden", func(t *testing.T) {
		_, err := f.svc.ListForJob(context.Background(), "rec_2", "job_1")
		require.ErrorIs(t, err, applications.ErrNotRecruiter)
	})
}

func TestServiceSetStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedJob(t, "job_1", "rec_1")

	application, err := f.svc.Apply(context.Background(), "seeker_1", "job_1", "")
	require.NoError(t, err)

	t.Run("recruiter shortlists", func(t *testing.T) {
		require.NoError(t, f.svc.SetStatus(context.Background(), "rec_1", application.ID, applications.StatusShortlisted))

		views, err := f.svc.ListForJob(context.Background(), "rec_1", "job_1")
		require.NoError(t, err)
		require.Equal(t, applications.StatusShortlisted, views[0].Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		err := f.svc.SetStatus(context.Background(), "rec_1", application.ID, "hired")
		require.ErrorIs(t, err, applications.ErrInvalidStatus)
	})

	t.Run("other recruiter forbidden", func(t *testing.T) {
		err := f.svc.SetStatus(context.Background(), "rec_2", application.ID, applications.StatusRejected)
		require.ErrorIs(t, err, applications.ErrNotRecruiter)
	})

	t.Run("missing application not found", func(t *testing.T) {
		err := f.svc.SetStatus(context.Background(), "rec_1", "app_missing", applications.StatusAccepted)
		require.ErrorIs(t, err, applications.ErrApplicationNotFound)
	})
}
