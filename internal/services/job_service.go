package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/apperrors"
	"github.com/justsurfingit/jobportal/internal/dtos"
	"github.com/justsurfingit/jobportal/internal/models"
)

// JobStore is implemented by database.JobStore and database.MemoryJobStore.
type JobStore interface {
	List(ctx context.Context, hrEmail string) ([]models.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	IncrementApplicationCount(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

type JobService struct {
	Store JobStore
	Log   logrus.FieldLogger
}

func NewJobService(store JobStore, log logrus.FieldLogger) *JobService {
	return &JobService{
		Store: store,
		Log:   log,
	}
}

// ListJobs returns every job, or only those posted by filterEmail when it is set.
func (s *JobService) ListJobs(ctx context.Context, filterEmail string) ([]models.Job, error) {
	return s.Store.List(ctx, filterEmail)
}

func (s *JobService) GetJob(ctx context.Context, rawID string) (*models.Job, error) {
	id, err := parseID(rawID, "job")
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, id)
}

func (s *JobService) CreateJob(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	job := req.ToModel()
	if err := s.Store.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	s.Log.WithFields(logrus.Fields{"job_id": job.ID, "hr_email": job.HREmail}).Info("Job created")
	return job, nil
}

// IncrementApplicationCount adds one to the job's applicationCount. It is not
// isolated from concurrent callers unless the store is configured for atomic increments.
func (s *JobService) IncrementApplicationCount(ctx context.Context, jobID uuid.UUID) error {
	return s.Store.IncrementApplicationCount(ctx, jobID)
}

// Ping reports whether the backing store is reachable.
func (s *JobService) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation(fmt.Sprintf("invalid %s id %q", what, raw), err)
	}
	return id, nil
}
