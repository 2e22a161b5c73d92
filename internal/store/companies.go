package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/models"
)

type companyStore struct {
	db *gorm.DB
}

func (s *companyStore) CreateWithUser(ctx context.Context, u *models.User, c *models.Company) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		c.UserID = u.ID
		return tx.Create(c).Error
	})
	if err != nil {
		return fmt.Errorf("%w: register company: %v", apperr.ErrInternal, err)
	}
	return nil
}

func (s *companyStore) ByID(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "company")
	}
	return &c, nil
}

func (s *companyStore) ByUserID(ctx context.Context, userID uint) (*models.Company, error) {
	var c models.Company
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, notFound(err, "company")
	}
	return &c, nil
}

func (s *companyStore) ByEmail(ctx context.Context, email string) (*models.Company, error) {
	var c models.Company
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&c).Error; err != nil {
		return nil, notFound(err, "company")
	}
	return &c, nil
}

func (s *companyStore) List(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.WithContext(ctx).Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("%w: list companies: %v", apperr.ErrInternal, err)
	}
	return companies, nil
}

func (s *companyStore) ByIDWithApprovedJobs(ctx context.Context, id uint) (*models.Company, error) {
	var c models.Company
	err := s.db.WithContext(ctx).
		Preload("Jobs", "status = ?", models.StatusApproved).
		First(&c, id).Error
	if err != nil {
		return nil, notFound(err, "company")
	}
	return &c, nil
}
