package recommend_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jobdeskhq/jobdesk/modules/jobs"
	"github.com/jobdeskhq/jobdesk/modules/profiles"
	"github.com/jobdeskhq/jobdesk/modules/recommend"
)

type fakeRanker struct {
	ids []string
	err error
}

func (r *fakeRanker) Rank(_ context.Context, _ *profiles.SeekerProfile, _ []jobs.Job) ([]string, error) {
	return r.ids, r.err
}

type fixture struct {
	jobs     *jobs.MemoryStore
	profiles *profiles.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		jobs:     jobs.NewMemoryStore(),
		profiles: profiles.NewMemoryStore(),
	}
	require.NoError(t, f.profiles.UpsertSeeker(context.Background(), &profiles.SeekerProfile{
		AccountID: "seeker_1",
		Skills:    []string{"go", "mongodb"},
	}))
	return f
}

func (f *fixture) seedJob(t *testing.T, id string, status jobs.JobStatus, skills ...string) {
	t.Helper()
	require.NoError(t, f.jobs.Create(context.Background(), &jobs.Job{
		ID:             id,
		RecruiterID:    "rec_1",
		Title:          id,
		Status:         status,
		RequiredSkills: skills,
	}))
}

func TestServiceRecommend(t *testing.T) {
	t.Parallel()

	t.Run("returns ranker picks in order", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.seedJob(t, "job_1", jobs.StatusApproved, "go")
		f.seedJob(t, "job_2", jobs.StatusApproved, "react")
		f.seedJob(t, "job_3", jobs.StatusApproved, "go", "mongodb")

		ranker := &fakeRanker{ids: []string{"job_3", "job_1", "job_unknown"}}
		svc := recommend.NewService(f.jobs, f.profiles, ranker)

		result, err := svc.Recommend(context.Background(), "seeker_1")
		require.NoError(t, err)
		require.Len(t, result, 2)
		require.Equal(t, "job_3", result[0].ID)
		require.Equal(t, "job_1", result[1].ID)
	})

	t.Run("ranker failure falls back to skill overlap", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.seedJob(t, "job_1", jobs.StatusApproved, "go")
		f.seedJob(t, "job_2", jobs.StatusApproved, "react")
		f.seedJob(t, "job_3", jobs.StatusApproved, "go", "mongodb")

		ranker := &fakeRanker{err: errors.New("rate limited")}
		svc := recommend.NewService(f.jobs, f.profiles, ranker)

		result, err := svc.Recommend(context.Background(), "seeker_1")
		require.NoError(t, err)
		require.Len(t, result, 2)
		// Two overlapping skills beat one; no overlap is dropped.
		require.Equal(t, "job_3", result[0].ID)
		require.Equal(t, "job_1", result[1].ID)
	})

	t.Run("nil ranker uses skill overlap directly", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.seedJob(t, "job_1", jobs.StatusApproved, "go")

		svc := recommend.NewService(f.jobs, f.profiles, nil)
		result, err := svc.Recommend(context.Background(), "seeker_1")
		require.NoError(t, err)
		require.Len(t, result, 1)
	})

	t.Run("only approved jobs are considered", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.seedJob(t, "job_1", jobs.StatusPending, "go")

		svc := recommend.NewService(f.jobs, f.profiles, nil)
		result, err := svc.Recommend(context.Background(), "seeker_1")
		require.NoError(t, err)
		require.Empty(t, result)
	})

	t.Run("missing profile required", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		svc := recommend.NewService(f.jobs, f.profiles, nil)

		_, err := svc.Recommend(context.Background(), "seeker_unknown")
		require.ErrorIs(t, err, recommend.ErrProfileRequired)
	})

	t.Run("ranker returning garbage falls back", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.seedJob(t, "job_1", jobs.StatusApproved, "go")

		ranker := &fakeRanker{ids: []string{"nope", "also_nope"}}
		svc := recommend.NewService(f.jobs, f.profiles, ranker)

		result, err := svc.Recommend(context.Background(), "seeker_1")
		require.NoError(t, err)
		require.Len(t, result, 1)
		require.Equal(t, "job_1", result[0].ID)
	})
}
