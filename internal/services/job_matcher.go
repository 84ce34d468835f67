package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/justsurfingit/jobportal/internal/apperrors"
	"github.com/justsurfingit/jobportal/internal/models"
)

// JobMatcher resolves the parent job of applications during one listing.
// Each distinct job id is looked up once.
type JobMatcher struct {
	jobs  JobStore
	found map[uuid.UUID]*models.Job
}

func NewJobMatcher(jobs JobStore) *JobMatcher {
	return &JobMatcher{
		jobs:  jobs,
		found: make(map[uuid.UUID]*models.Job),
	}
}

// FindJob returns the parent job, or nil when the reference dangles.
func (m *JobMatcher) FindJob(ctx context.Context, app *models.Application) (*models.Job, error) {
	if job, ok := m.found[app.JobID]; ok {
		return job, nil
	}

	job, err := m.jobs.Get(ctx, app.JobID)
	if errors.Is(err, apperrors.ErrNotFound) {
		m.found[app.JobID] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.found[app.JobID] = job
	return job, nil
}
