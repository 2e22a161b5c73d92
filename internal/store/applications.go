package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/models"
)

type savedJobStore struct {
	db *gorm.DB
}

// Save is an insert keyed on (user, job); saving twice leaves one row.
func (s *savedJobStore) Save(ctx context.Context, userID, jobID uint) error {
	row := models.SavedJob{UserID: userID, JobID: jobID}
	err := s.db.WithContext(ctx).
		Where(models.SavedJob{UserID: userID, JobID: jobID}).
		FirstOrCreate(&row).Error
	if err != nil {
		return fmt.Errorf("%w: save job: %v", apperr.ErrInternal, err)
	}
	return nil
}

// Unsave deletes by key; a missing bookmark is a no-op.
func (s *savedJobStore) Unsave(ctx context.Context, userID, jobID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.SavedJob{}).Error
	if err != nil {
		return fmt.Errorf("%w: unsave job: %v", apperr.ErrInternal, err)
	}
	return nil
}

func (s *savedJobStore) ListJobs(ctx context.Context, userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).
		Joins("JOIN saved_jobs ON saved_jobs.job_id = jobs.id").
		Where("saved_jobs.user_id = ?", userID).
		Order("saved_jobs.created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list saved jobs: %v", apperr.ErrInternal, err)
	}
	return jobs, nil
}

type applicationStore struct {
	db *gorm.DB
}

func (s *applicationStore) Upsert(ctx context.Context, a *models.Application) error {
	err := s.db.WithContext(ctx).
		Where(models.Application{JobID: a.JobID, ApplicantID: a.ApplicantID}).
		Assign(models.Application{CVPath: a.CVPath}).
		FirstOrCreate(a).Error
	if err != nil {
		return fmt.Errorf("%w: store application: %v", apperr.ErrInternal, err)
	}
	return nil
}

func (s *applicationStore) ListByJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.WithContext(ctx).Where("job_id = ?", jobID).Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %v", apperr.ErrInternal, err)
	}
	return apps, nil
}
