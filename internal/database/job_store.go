package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/jobportal/internal/apperrors"
	"github.com/justsurfingit/jobportal/internal/models"
)

type JobStore struct {
	DB *gorm.DB
	// AtomicIncrement switches IncrementApplicationCount to a single UPDATE expression.
	AtomicIncrement bool
}

func NewJobStore(db *gorm.DB, atomicIncrement bool) *JobStore {
	return &JobStore{
		DB:              db,
		AtomicIncrement: atomicIncrement,
	}
}

func (s *JobStore) List(ctx context.Context, hrEmail string) ([]models.Job, error) {
	q := s.DB.WithContext(ctx).Order("created_at")
	if hrEmail != "" {
		q = q.Where("hr_email = ?", hrEmail)
	}
	jobs := []models.Job{}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, storeError("list jobs", err)
	}
	return jobs, nil
}

func (s *JobStore) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("job not found")
	}
	if err != nil {
		return nil, storeError("get job", err)
	}
	return &job, nil
}

func (s *JobStore) Create(ctx context.Context, job *models.Job) error {
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return storeError("create job", err)
	}
	return nil
}

// IncrementApplicationCount bumps the job's applicationCount by one.
// Without AtomicIncrement this is a read followed by a write; concurrent
// callers can lose updates.
func (s *JobStore) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	if s.AtomicIncrement {
		res := s.DB.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).
			Update("application_count", gorm.Expr("COALESCE(application_count, 0) + 1"))
		if res.Error != nil {
			return storeError("increment application count", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("job not found")
		}
		return nil
	}

	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	next := job.Count() + 1
	err = s.DB.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).
		Update("application_count", next).Error
	if err != nil {
		return storeError("increment application count", err)
	}
	return nil
}

func (s *JobStore) Ping(ctx context.Context) error {
	return Ping(ctx, s.DB)
}
