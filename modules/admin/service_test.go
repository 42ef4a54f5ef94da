package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jobdeskhq/jobdesk/modules/admin"
	"github.com/jobdeskhq/jobdesk/modules/applications"
	"github.com/jobdeskhq/jobdesk/modules/auth"
	"github.com/jobdeskhq/jobdesk/modules/jobs"
)

type nopGate struct{}

func (nopGate) Admit(context.Context, string) error { return nil }

type fixture struct {
	svc      *admin.Service
	accounts *auth.MemoryAccountStore
	jobs     *jobs.Service
	jobStore *jobs.MemoryStore
	apps     *applications.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	accounts := auth.NewMemoryAccountStore()
	jobStore := jobs.NewMemoryStore()
	jobSvc := jobs.NewService(jobStore, nopGate{})
	apps := applications.NewMemoryStore()
	return &fixture{
		svc:      admin.NewService(accounts, jobStore, jobSvc, apps),
		accounts: accounts,
		jobs:     jobSvc,
		jobStore: jobStore,
		apps:     apps,
	}
}

func (f *fixture) seedAccount(t *testing.T, id string, role auth.Role) {
	t.Helper()
	require.NoError(t, f.accounts.Create(context.Background(), &auth.Account{
		ID:           id,
		Email:        id + "@example.com",
		Name:         id,
		Role:         role,
		PasswordHash: []byte("secret-hash"),
		CreatedAt:    time.Now().UTC(),
	}))
}

func TestServiceListUsers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedAccount(t, "user_1", auth.RoleSeeker)
	f.seedAccount(t, "rec_1", auth.RoleRecruiter)

	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, user := range users {
		require.NotEmpty(t, user.AccountID)
		require.NotEmpty(t, user.Email)
	}
}

func TestServiceDeleteUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedAccount(t, "user_1", auth.RoleSeeker)

	require.NoError(t, f.svc.DeleteUser(context.Background(), "user_1"))

	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Empty(t, users)

	err = f.svc.DeleteUser(context.Background(), "user_1")
	require.ErrorIs(t, err, auth.ErrAccountNotFound)
}

func TestServiceModeration(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	job, err := f.jobs.Create(context.Background(), "rec_1", jobs.Draft{
		Title:       "Backend Engineer",
		Description: "Build APIs",
		CompanyName: "Acme",
		Location:    "Remote",
		Type:        jobs.TypeRemote,
	})
	require.NoError(t, err)

	listed, err := f.svc.ListJobs(context.Background(), jobs.StatusPending)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, f.svc.ApproveJob(context.Background(), job.ID))

	listed, err = f.svc.ListJobs(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, jobs.StatusApproved, listed[0].Status)

	require.NoError(t, f.svc.RejectJob(context.Background(), job.ID))
	require.ErrorIs(t, f.svc.ApproveJob(context.Background(), "job_missing"), jobs.ErrJobNotFound)
}

func TestServiceAnalytics(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedAccount(t, "user_1", auth.RoleSeeker)
	f.seedAccount(t, "user_2", auth.RoleSeeker)
	f.seedAccount(t, "rec_1", auth.RoleRecruiter)
	f.seedAccount(t, "adm_1", auth.RoleAdmin)

	job, err := f.jobs.Create(context.Background(), "rec_1", jobs.Draft{
		Title:       "Backend Engineer",
		Description: "Build APIs",
		CompanyName: "Acme",
		Location:    "Remote",
		Type:        jobs.TypeRemote,
	})
	require.NoError(t, err)
	require.NoError(t, f.jobs.Approve(context.Background(), job.ID))

	_, err = f.jobs.Create(context.Background(), "rec_1", jobs.Draft{
		Title:       "Data Engineer",
		Description: "Build pipelines",
		CompanyName: "Acme",
		Location:    "Remote",
		Type:        jobs.TypeRemote,
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, f.apps.Create(context.Background(), &applications.Application{
		ID:          "app_1",
		JobID:       job.ID,
		SeekerID:    "user_1",
		RecruiterID: "rec_1",
		Status:      applications.StatusPending,
		AppliedAt:   now,
		UpdatedAt:   now,
	}))

	analytics, err := f.svc.GetAnalytics(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 4, analytics.Users.Total)
	require.EqualValues(t, 2, analytics.Users.JobSeekers)
	require.EqualValues(t, 1, analytics.Users.Recruiters)
	require.EqualValues(t, 2, analytics.Jobs.Total)
	require.EqualValues(t, 1, analytics.Jobs.Approved)
	require.EqualValues(t, 1, analytics.Jobs.Pending)
	require.EqualValues(t, 1, analytics.Applications.Total)
	require.EqualValues(t, 1, analytics.Applications.Pending)
}
