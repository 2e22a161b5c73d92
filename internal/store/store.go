// Package store is the persistence boundary. Services depend on the
// interfaces; the gorm implementations in this package are the only code
// that touches the database.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/models"
)

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

type CompanyStore interface {
	// CreateWithUser persists the login user and the company profile in one
	// transaction, so a half-registered company cannot exist.
	CreateWithUser(ctx context.Context, u *models.User, c *models.Company) error
	ByID(ctx context.Context, id uint) (*models.Company, error)
	ByUserID(ctx context.Context, userID uint) (*models.Company, error)
	ByEmail(ctx context.Context, email string) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	ByIDWithApprovedJobs(ctx context.Context, id uint) (*models.Company, error)
}

// JobFilter narrows the listing query. The zero value means "approved jobs
// only, no attribute filters".
type JobFilter struct {
	Location    string
	JobCategory string
	WorkType    string

	// AllStatuses drops the status filter entirely (admin view).
	AllStatuses bool
	// OwnerCompanyID widens the filter to "approved OR posted by this
	// company" (company view of its own unapproved listings).
	OwnerCompanyID uint
}

type JobStore interface {
	Create(ctx context.Context, j *models.Job) error
	ByID(ctx context.Context, id uint) (*models.Job, error)
	Update(ctx context.Context, j *models.Job) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f JobFilter) ([]models.Job, error)
	ListByStatus(ctx context.Context, status models.JobStatus) ([]models.Job, error)
	ListByCompany(ctx context.Context, companyID uint) ([]models.Job, error)
}

type SavedJobStore interface {
	Save(ctx context.Context, userID, jobID uint) error
	Unsave(ctx context.Context, userID, jobID uint) error
	ListJobs(ctx context.Context, userID uint) ([]models.Job, error)
}

type ApplicationStore interface {
	// Upsert stores the application keyed by (job, applicant); a repeat
	// application refreshes the CV reference instead of duplicating.
	Upsert(ctx context.Context, a *models.Application) error
	ListByJob(ctx context.Context, jobID uint) ([]models.Application, error)
}

// Stores bundles every repository over one gorm connection.
type Stores struct {
	Users        UserStore
	Companies    CompanyStore
	Jobs         JobStore
	Saved        SavedJobStore
	Applications ApplicationStore
}

func New(db *gorm.DB) *Stores {
	return &Stores{
		Users:        &userStore{db: db},
		Companies:    &companyStore{db: db},
		Jobs:         &jobStore{db: db},
		Saved:        &savedJobStore{db: db},
		Applications: &applicationStore{db: db},
	}
}

// notFound translates gorm's sentinel into the API taxonomy.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", apperr.ErrNotFound, what)
	}
	return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
}
