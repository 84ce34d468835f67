package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/apperrors"
	"github.com/justsurfingit/jobportal/internal/auth"
	"github.com/justsurfingit/jobportal/internal/dtos"
	"github.com/justsurfingit/jobportal/internal/metrics"
	"github.com/justsurfingit/jobportal/internal/models"
)

// ApplicationStore is implemented by database.ApplicationStore and database.MemoryApplicationStore.
type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	ListByEmail(ctx context.Context, email string) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.UpdateResult, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type ApplicationService struct {
	Store   ApplicationStore
	Jobs    *JobService
	Log     logrus.FieldLogger
	Metrics *metrics.Metrics
}

func NewApplicationService(store ApplicationStore, jobs *JobService, log logrus.FieldLogger, m *metrics.Metrics) *ApplicationService {
	return &ApplicationService{
		Store:   store,
		Jobs:    jobs,
		Log:     log,
		Metrics: m,
	}
}

// CreateApplication inserts the application, then bumps the parent job's
// applicationCount. The increment is best effort: its failure is logged and
// the insert is still reported as a success.
func (s *ApplicationService) CreateApplication(ctx context.Context, req *dtos.ApplicationCreationRequest) (*models.Application, error) {
	jobID, err := parseID(req.JobID, "job")
	if err != nil {
		return nil, err
	}

	app := &models.Application{
		JobID:            jobID,
		ApplicationEmail: req.ApplicationEmail,
		LinkedIn:         req.LinkedIn,
		Github:           req.Github,
		Resume:           req.Resume,
		Status:           req.Status,
		Extra:            req.Extra,
	}
	if err := s.Store.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	s.Metrics.ApplicationsCreated.Inc()

	log := s.Log.WithFields(logrus.Fields{"application_id": app.ID, "job_id": jobID})
	if err := s.Jobs.IncrementApplicationCount(ctx, jobID); err != nil {
		s.Metrics.CountIncrementFailures.Inc()
		log.WithError(err).Warn("Failed to increment application count")
	} else {
		log.Debug("Application count incremented")
	}
	return app, nil
}

// ListApplicationsByApplicant returns the requester's own applications, each
// enriched with its job's company, jobType, category and location.
// Applications whose job no longer resolves are left out.
func (s *ApplicationService) ListApplicationsByApplicant(ctx context.Context, email string, requester *auth.Identity) ([]models.Application, error) {
	if requester == nil {
		return nil, apperrors.Unauthenticated()
	}
	if err := auth.AuthorizeOwnership(requester.Email, email); err != nil {
		return nil, err
	}

	apps, err := s.Store.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	matcher := NewJobMatcher(s.Jobs.Store)
	enriched := make([]models.Application, 0, len(apps))
	for i := range apps {
		app := apps[i]
		job, err := matcher.FindJob(ctx, &app)
		if err != nil {
			return nil, fmt.Errorf("enrich application %s: %w", app.ID, err)
		}
		if job == nil {
			s.Metrics.OrphanedApplicationsSkip.Inc()
			s.Log.WithFields(logrus.Fields{"application_id": app.ID, "job_id": app.JobID}).
				Warn("Skipping application whose job does not exist")
			continue
		}
		app.Enrich(job)
		enriched = append(enriched, app)
	}
	return enriched, nil
}

// ListApplicationsForJob is open to any caller; it performs no ownership check.
func (s *ApplicationService) ListApplicationsForJob(ctx context.Context, rawJobID string) ([]models.Application, error) {
	jobID, err := parseID(rawJobID, "job")
	if err != nil {
		return nil, err
	}
	return s.Store.ListByJob(ctx, jobID)
}

// UpdateStatus sets only the status field. Values are free-form.
func (s *ApplicationService) UpdateStatus(ctx context.Context, rawID, status string) (models.UpdateResult, error) {
	id, err := parseID(rawID, "application")
	if err != nil {
		return models.UpdateResult{}, err
	}
	res, err := s.Store.UpdateStatus(ctx, id, status)
	if err != nil {
		return models.UpdateResult{}, err
	}
	s.Log.WithFields(logrus.Fields{"application_id": id, "status": status, "matched": res.MatchedCount}).
		Info("Application status updated")
	return res, nil
}

// Delete removes the application; a missing id reports zero deleted records.
func (s *ApplicationService) Delete(ctx context.Context, rawID string) (int64, error) {
	id, err := parseID(rawID, "application")
	if err != nil {
		return 0, err
	}
	return s.Store.Delete(ctx, id)
}
