package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/jobportal/internal/models"
)

type ApplicationStore struct {
	DB *gorm.DB
}

func NewApplicationStore(db *gorm.DB) *ApplicationStore {
	return &ApplicationStore{DB: db}
}

func (s *ApplicationStore) Create(ctx context.Context, app *models.Application) error {
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return storeError("create application", err)
	}
	return nil
}

func (s *ApplicationStore) ListByEmail(ctx context.Context, email string) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.WithContext(ctx).Where("application_email = ?", email).Order("created_at").Find(&apps).Error
	if err != nil {
		return nil, storeError("list applications by email", err)
	}
	return apps, nil
}

func (s *ApplicationStore) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	apps := []models.Application{}
	err := s.DB.WithContext(ctx).Where("job_id = ?", jobID).Order("created_at").Find(&apps).Error
	if err != nil {
		return nil, storeError("list applications by job", err)
	}
	return apps, nil
}

// UpdateStatus sets only the status column. Postgres reports matched rows as
// affected even when the value is unchanged, so both counters carry that number.
func (s *ApplicationStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.UpdateResult, error) {
	res := s.DB.WithContext(ctx).Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.UpdateResult{}, storeError("update application status", res.Error)
	}
	return models.UpdateResult{MatchedCount: res.RowsAffected, ModifiedCount: res.RowsAffected}, nil
}

func (s *ApplicationStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Application{})
	if res.Error != nil {
		return 0, storeError("delete application", res.Error)
	}
	return res.RowsAffected, nil
}
