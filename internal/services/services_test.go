package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justsurfingit/jobportal/internal/apperrors"
	"github.com/justsurfingit/jobportal/internal/auth"
	"github.com/justsurfingit/jobportal/internal/database"
	"github.com/justsurfingit/jobportal/internal/dtos"
	"github.com/justsurfingit/jobportal/internal/logging"
	"github.com/justsurfingit/jobportal/internal/metrics"
	"github.com/justsurfingit/jobportal/internal/models"
)

// flakyJobStore wraps the memory store and fails selected operations.
type flakyJobStore struct {
	*database.MemoryJobStore
	getErr       error
	incrementErr error
	gets         int
}

func (s *flakyJobStore) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.MemoryJobStore.Get(ctx, id)
}

func (s *flakyJobStore) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	if s.incrementErr != nil {
		return s.incrementErr
	}
	return s.MemoryJobStore.IncrementApplicationCount(ctx, id)
}

type fixture struct {
	jobStore *flakyJobStore
	appStore *database.MemoryApplicationStore
	jobs     *JobService
	apps     *ApplicationService
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logging.Discard()
	m := metrics.New()
	jobStore := &flakyJobStore{MemoryJobStore: database.NewMemoryJobStore(false)}
	appStore := database.NewMemoryApplicationStore()
	jobs := NewJobService(jobStore, log)
	return &fixture{
		jobStore: jobStore,
		appStore: appStore,
		jobs:     jobs,
		apps:     NewApplicationService(appStore, jobs, log, m),
		metrics:  m,
	}
}

func (f *fixture) createJob(t *testing.T, req dtos.JobCreationRequest) *models.Job {
	t.Helper()
	job, err := f.jobs.CreateJob(context.Background(), &req)
	require.NoError(t, err)
	return job
}

func (f *fixture) apply(t *testing.T, jobID uuid.UUID, email string) *models.Application {
	t.Helper()
	app, err := f.apps.CreateApplication(context.Background(), &dtos.ApplicationCreationRequest{
		JobID:            jobID.String(),
		ApplicationEmail: email,
		Status:           "pending",
	})
	require.NoError(t, err)
	return app
}

func TestJobService_CreateGetList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com", Company: "Acme"})
	f.createJob(t, dtos.JobCreationRequest{HREmail: "other@x.com", Company: "Globex"})

	got, err := f.jobs.GetJob(ctx, job.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Company)
	assert.Nil(t, got.ApplicationCount)

	all, err := f.jobs.ListJobs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.jobs.ListJobs(ctx, "hr@x.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, job.ID, mine[0].ID)
}

func TestJobService_GetJobErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.jobs.GetJob(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.jobs.GetJob(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCreateApplication_IncrementsCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com"})

	f.apply(t, job.ID, "a@x.com")
	got, err := f.jobs.GetJob(ctx, job.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count())

	f.apply(t, job.ID, "b@x.com")
	got, err = f.jobs.GetJob(ctx, job.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count())
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.ApplicationsCreated))
}

func TestCreateApplication_DanglingJobStillInserts(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()

	app := f.apply(t, missing, "a@x.com")
	assert.NotEqual(t, uuid.Nil, app.ID)

	stored, err := f.apps.ListApplicationsForJob(context.Background(), missing.String())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CountIncrementFailures))
}

func TestCreateApplication_IncrementFailureDoesNotFailInsert(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com"})
	f.jobStore.incrementErr = errors.New("connection reset")

	app := f.apply(t, job.ID, "a@x.com")
	assert.Equal(t, job.ID, app.JobID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CountIncrementFailures))

	f.jobStore.incrementErr = nil
	got, err := f.jobs.GetJob(context.Background(), job.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got.ApplicationCount)
}

func TestCreateApplication_InvalidJobID(t *testing.T) {
	f := newFixture(t)
	_, err := f.apps.CreateApplication(context.Background(), &dtos.ApplicationCreationRequest{JobID: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListApplicationsByApplicant_EnrichesOwnApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	acme := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com", Company: "Acme", JobType: "Remote", Category: "Engineering", Location: "Dhaka"})
	globex := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com", Company: "Globex", JobType: "Onsite", Category: "Design", Location: "Berlin"})

	f.apply(t, acme.ID, "a@x.com")
	f.apply(t, globex.ID, "a@x.com")
	f.apply(t, acme.ID, "b@x.com")

	apps, err := f.apps.ListApplicationsByApplicant(ctx, "a@x.com", &auth.Identity{Email: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, apps, 2)

	for _, app := range apps {
		assert.Equal(t, "a@x.com", app.ApplicationEmail)
	}
	assert.Equal(t, "Acme", apps[0].Company)
	assert.Equal(t, "Remote", apps[0].JobType)
	assert.Equal(t, "Engineering", apps[0].Category)
	assert.Equal(t, "Dhaka", apps[0].Location)
	assert.Equal(t, "Globex", apps[1].Company)
	assert.Equal(t, "Berlin", apps[1].Location)
}

func TestListApplicationsByApplicant_LooksUpEachJobOnce(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com", Company: "Acme"})
	for i := 0; i < 3; i++ {
		f.apply(t, job.ID, "a@x.com")
	}
	f.jobStore.gets = 0

	apps, err := f.apps.ListApplicationsByApplicant(context.Background(), "a@x.com", &auth.Identity{Email: "a@x.com"})
	require.NoError(t, err)
	assert.Len(t, apps, 3)
	assert.Equal(t, 1, f.jobStore.gets)
}

func TestListApplicationsByApplicant_SkipsOrphans(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com", Company: "Acme"})
	f.apply(t, job.ID, "a@x.com")
	f.apply(t, uuid.New(), "a@x.com")

	apps, err := f.apps.ListApplicationsByApplicant(context.Background(), "a@x.com", &auth.Identity{Email: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Acme", apps[0].Company)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.OrphanedApplicationsSkip))
}

func TestListApplicationsByApplicant_StoreErrorFailsListing(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com"})
	f.apply(t, job.ID, "a@x.com")
	f.jobStore.getErr = apperrors.StoreUnavailable(errors.New("dial tcp"))

	_, err := f.apps.ListApplicationsByApplicant(context.Background(), "a@x.com", &auth.Identity{Email: "a@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestListApplicationsByApplicant_Forbidden(t *testing.T) {
	f := newFixture(t)
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com"})
	f.apply(t, job.ID, "a@x.com")

	apps, err := f.apps.ListApplicationsByApplicant(context.Background(), "a@x.com", &auth.Identity{Email: "b@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Nil(t, apps)

	_, err = f.apps.ListApplicationsByApplicant(context.Background(), "a@x.com", nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestUpdateStatus_OnlyTouchesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com"})
	app := f.apply(t, job.ID, "a@x.com")

	res, err := f.apps.UpdateStatus(ctx, app.ID.String(), "accepted")
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 1, res.ModifiedCount)

	apps, err := f.apps.ListApplicationsForJob(ctx, job.ID.String())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "accepted", apps[0].Status)
	assert.Equal(t, job.ID, apps[0].JobID)
	assert.Equal(t, "a@x.com", apps[0].ApplicationEmail)

	_, err = f.apps.UpdateStatus(ctx, "bad", "accepted")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestDelete_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	job := f.createJob(t, dtos.JobCreationRequest{HREmail: "hr@x.com"})
	app := f.apply(t, job.ID, "a@x.com")

	n, err := f.apps.Delete(ctx, app.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = f.apps.Delete(ctx, app.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	n, err = f.apps.Delete(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	_, err = f.apps.Delete(ctx, "bad")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJobMatcher_CachesMisses(t *testing.T) {
	f := newFixture(t)
	matcher := NewJobMatcher(f.jobStore)
	app := &models.Application{JobID: uuid.New()}

	for i := 0; i < 2; i++ {
		job, err := matcher.FindJob(context.Background(), app)
		require.NoError(t, err)
		assert.Nil(t, job)
	}
	assert.Equal(t, 1, f.jobStore.gets)
}
