package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/models"
)

type jobStore struct {
	db *gorm.DB
}

func (s *jobStore) Create(ctx context.Context, j *models.Job) error {
	if err := s.db.WithContext(ctx).Create(j).Error; err != nil {
		return fmt.Errorf("%w: create job: %v", apperr.ErrInternal, err)
	}
	return nil
}

func (s *jobStore) ByID(ctx context.Context, id uint) (*models.Job, error) {
	var j models.Job
	if err := s.db.WithContext(ctx).First(&j, id).Error; err != nil {
		return nil, notFound(err, "job")
	}
	return &j, nil
}

func (s *jobStore) Update(ctx context.Context, j *models.Job) error {
	if err := s.db.WithContext(ctx).Save(j).Error; err != nil {
		return fmt.Errorf("%w: update job: %v", apperr.ErrInternal, err)
	}
	return nil
}

func (s *jobStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Job{}, id)
	if res.Error != nil {
		return fmt.Errorf("%w: delete job: %v", apperr.ErrInternal, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: job", apperr.ErrNotFound)
	}
	return nil
}

func (s *jobStore) List(ctx context.Context, f JobFilter) ([]models.Job, error) {
	q := s.db.WithContext(ctx).Model(&models.Job{})

	switch {
	case f.AllStatuses:
		// admin sees every status
	case f.OwnerCompanyID != 0:
		// Parenthesized so the attribute filters below AND against the whole
		// visibility clause.
		q = q.Where("(status = ? OR poster_company_id = ?)", models.StatusApproved, f.OwnerCompanyID)
	default:
		q = q.Where("status = ?", models.StatusApproved)
	}

	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.JobCategory != "" {
		q = q.Where("job_category = ?", f.JobCategory)
	}
	if f.WorkType != "" {
		q = q.Where("work_type = ?", f.WorkType)
	}

	var jobs []models.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", apperr.ErrInternal, err)
	}
	return jobs, nil
}

func (s *jobStore) ListByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", apperr.ErrInternal, err)
	}
	return jobs, nil
}

func (s *jobStore) ListByCompany(ctx context.Context, companyID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.db.WithContext(ctx).Where("poster_company_id = ?", companyID).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %v", apperr.ErrInternal, err)
	}
	return jobs, nil
}
