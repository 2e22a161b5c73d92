package services

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/models"
	"github.com/vacansy/vacansy-api/internal/storage"
	"github.com/vacansy/vacansy-api/internal/store"
)

// SeekerService owns what a job-seeker does with approved listings:
// apply with a CV, bookmark, unbookmark.
type SeekerService struct {
	jobs         store.JobStore
	users        store.UserStore
	companies    store.CompanyStore
	saved        store.SavedJobStore
	applications store.ApplicationStore
	uploader     storage.Uploader
	mailer       Mailer
	log          *zap.Logger
}

func NewSeekerService(
	jobs store.JobStore,
	users store.UserStore,
	companies store.CompanyStore,
	saved store.SavedJobStore,
	applications store.ApplicationStore,
	uploader storage.Uploader,
	mailer Mailer,
	log *zap.Logger,
) *SeekerService {
	return &SeekerService{
		jobs:         jobs,
		users:        users,
		companies:    companies,
		saved:        saved,
		applications: applications,
		uploader:     uploader,
		mailer:       mailer,
		log:          log,
	}
}

// approvedJob loads a listing and hides anything unapproved behind a 404,
// so an applicant cannot probe for pending listings.
func (s *SeekerService) approvedJob(ctx context.Context, jobID uint) (*models.Job, error) {
	job, err := s.jobs.ByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != models.StatusApproved {
		return nil, fmt.Errorf("%w: job not found or not approved", apperr.ErrNotFound)
	}
	return job, nil
}

// Apply stores the CV, records the application and notifies the posting
// company. The row is persisted before the mail goes out, so a failed send
// surfaces as an error but never loses the application.
func (s *SeekerService) Apply(ctx context.Context, caller auth.Caller, jobID uint, cvName string, cv io.Reader) (*models.Application, error) {
	job, err := s.approvedJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.ByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	cvPath, err := s.uploader.UploadCV(ctx, cvName, cv)
	if err != nil {
		return nil, fmt.Errorf("%w: upload cv: %v", apperr.ErrInternal, err)
	}

	user.Resume = cvPath
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	application := &models.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		CVPath:      cvPath,
	}
	if err := s.applications.Upsert(ctx, application); err != nil {
		return nil, err
	}

	to := job.Email
	if poster, ok := job.Poster(); ok && poster.IsCompany() {
		if company, err := s.companies.ByID(ctx, poster.ID()); err == nil {
			to = company.Email
		}
	}

	if err := s.mailer.SendApplication(to, job.Title, user.Email, cvPath); err != nil {
		s.log.Error("application mail failed",
			zap.Uint("job_id", job.ID),
			zap.Uint("applicant_id", user.ID),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Info("application submitted",
		zap.Uint("job_id", job.ID),
		zap.Uint("applicant_id", user.ID),
	)
	return application, nil
}

// Save bookmarks an approved listing. Saving twice is a no-op.
func (s *SeekerService) Save(ctx context.Context, caller auth.Caller, jobID uint) ([]models.Job, error) {
	if _, err := s.approvedJob(ctx, jobID); err != nil {
		return nil, err
	}
	if err := s.saved.Save(ctx, caller.ID, jobID); err != nil {
		return nil, err
	}
	return s.saved.ListJobs(ctx, caller.ID)
}

// Unsave removes a bookmark; absent bookmarks are not an error.
func (s *SeekerService) Unsave(ctx context.Context, caller auth.Caller, jobID uint) ([]models.Job, error) {
	if err := s.saved.Unsave(ctx, caller.ID, jobID); err != nil {
		return nil, err
	}
	return s.saved.ListJobs(ctx, caller.ID)
}

// SavedJobs resolves the caller's bookmarks to full job records.
func (s *SeekerService) SavedJobs(ctx context.Context, caller auth.Caller) ([]models.Job, error) {
	return s.saved.ListJobs(ctx, caller.ID)
}
