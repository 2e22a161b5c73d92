package services

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/dtos"
	"github.com/vacansy/vacansy-api/internal/models"
	"github.com/vacansy/vacansy-api/internal/policy"
	"github.com/vacansy/vacansy-api/internal/store"
)

// JobService owns the listing lifecycle: create, moderate, edit, delete,
// and the per-caller read paths. All authorization goes through policy.
type JobService struct {
	jobs         store.JobStore
	companies    store.CompanyStore
	users        store.UserStore
	applications store.ApplicationStore
	log          *zap.Logger
}

func NewJobService(
	jobs store.JobStore,
	companies store.CompanyStore,
	users store.UserStore,
	applications store.ApplicationStore,
	log *zap.Logger,
) *JobService {
	return &JobService{
		jobs:         jobs,
		companies:    companies,
		users:        users,
		applications: applications,
		log:          log,
	}
}

// newCustomID is the human-readable listing code, e.g. "ID483920".
func newCustomID() string {
	return fmt.Sprintf("ID%06d", 100000+rand.Intn(900000))
}

// callerCompanyID resolves the caller's own company, zero when they have
// none. Store errors other than not-found are deliberately treated as "no
// company": the policy then falls back to the most restrictive scope.
func (s *JobService) callerCompanyID(ctx context.Context, caller auth.Caller) uint {
	if !caller.IsCompany() {
		return 0
	}
	company, err := s.companies.ByUserID(ctx, caller.ID)
	if err != nil {
		return 0
	}
	return company.ID
}

// validateClosedSets rejects values outside the fixed enumerations. Empty
// strings are skipped so the same check serves partial edits.
func validateClosedSets(location, workType, experience, category string, langs []string) error {
	if location != "" && !models.Location(location).Valid() {
		return fmt.Errorf("%w: unknown location %q", apperr.ErrInvalidRequest, location)
	}
	if workType != "" && !models.WorkType(workType).Valid() {
		return fmt.Errorf("%w: unknown work type %q", apperr.ErrInvalidRequest, workType)
	}
	if experience != "" && !models.Experience(experience).Valid() {
		return fmt.Errorf("%w: unknown experience band %q", apperr.ErrInvalidRequest, experience)
	}
	if category != "" && !models.JobCategory(category).Valid() {
		return fmt.Errorf("%w: unknown job category %q", apperr.ErrInvalidRequest, category)
	}
	if !models.ValidLanguages(langs) {
		return fmt.Errorf("%w: unknown language in list", apperr.ErrInvalidRequest)
	}
	return nil
}

// Create posts a listing for the caller's company. It always starts
// pending; the contact email is the company's.
func (s *JobService) Create(ctx context.Context, caller auth.Caller, req *dtos.JobCreateRequest) (*models.Job, error) {
	company, err := s.companies.ByUserID(ctx, caller.ID)
	if err != nil {
		// Registration creates the company row with its user in one
		// transaction, so a company caller without one is data corruption,
		// not a bad request.
		return nil, fmt.Errorf("%w: company profile for caller %d: %v", apperr.ErrInternal, caller.ID, err)
	}

	if err := validateClosedSets(req.Location, req.WorkType, req.Experience, req.JobCategory, req.Languages); err != nil {
		return nil, err
	}

	job := &models.Job{
		Title:       req.Title,
		Description: req.Description,
		CompanyName: req.CompanyName,
		Location:    models.Location(req.Location),
		SalaryRange: req.SalaryRange,
		WorkType:    models.WorkType(req.WorkType),
		Experience:  models.Experience(req.Experience),
		Education:   req.Education,
		Languages:   req.Languages,
		JobCategory: models.JobCategory(req.JobCategory),
		CustomID:    newCustomID(),
		Email:       company.Email,
		Status:      models.StatusPending,
	}
	job.SetPoster(models.CompanyPoster(company.ID))

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.log.Info("job created",
		zap.Uint("job_id", job.ID),
		zap.Uint("company_id", company.ID),
	)
	return job, nil
}

// List returns the listings the caller's scope allows, narrowed by the
// optional exact-match filters.
func (s *JobService) List(ctx context.Context, caller auth.Caller, q dtos.JobListQuery) ([]models.Job, error) {
	scope := policy.ScopeFor(caller, s.callerCompanyID(ctx, caller))
	return s.jobs.List(ctx, store.JobFilter{
		Location:       q.Location,
		JobCategory:    q.JobCategory,
		WorkType:       q.WorkType,
		AllStatuses:    scope.AllStatuses,
		OwnerCompanyID: scope.OwnerCompanyID,
	})
}

// Get returns one listing if the policy allows the caller to see it.
// Approved listings carry the resolved contact projection.
func (s *JobService) Get(ctx context.Context, caller auth.Caller, id uint) (*dtos.JobView, error) {
	job, err := s.jobs.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanView(job, caller, s.callerCompanyID(ctx, caller)); err != nil {
		return nil, err
	}

	view := &dtos.JobView{Job: *job}
	if job.Status == models.StatusApproved {
		contact := s.resolveContact(ctx, job)
		view.Contact = &contact
	}
	return view, nil
}

// resolveContact looks up the poster behind the listing; unresolvable
// references degrade to the placeholder instead of failing the request.
func (s *JobService) resolveContact(ctx context.Context, job *models.Job) policy.Contact {
	poster, ok := job.Poster()
	if !ok {
		return policy.ResolveContact(nil, nil)
	}
	if poster.IsCompany() {
		company, err := s.companies.ByID(ctx, poster.ID())
		if err != nil {
			return policy.ResolveContact(nil, nil)
		}
		return policy.ResolveContact(nil, company)
	}
	user, err := s.users.ByID(ctx, poster.ID())
	if err != nil {
		return policy.ResolveContact(nil, nil)
	}
	return policy.ResolveContact(user, nil)
}

// SetStatus is the admin moderation step: pending -> approved|rejected.
// Any listing that already left pending is an invalid transition.
func (s *JobService) SetStatus(ctx context.Context, id uint, status string) (*models.Job, error) {
	next := models.JobStatus(status)
	if next != models.StatusApproved && next != models.StatusRejected {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrInvalidRequest, status)
	}

	job, err := s.jobs.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: job is already %s", apperr.ErrInvalidRequest, job.Status)
	}

	job.Status = next
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	s.log.Info("job moderated", zap.Uint("job_id", job.ID), zap.String("status", status))
	return job, nil
}

// Update applies a partial edit by the owning company or the admin and
// unconditionally drops the listing back to pending.
func (s *JobService) Update(ctx context.Context, caller auth.Caller, id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.jobs.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := policy.CanMutate(job, caller, s.callerCompanyID(ctx, caller)); err != nil {
		return nil, err
	}

	if err := validateClosedSets(req.Location, req.WorkType, req.Experience, req.JobCategory, req.Languages); err != nil {
		return nil, err
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.CompanyName != "" {
		job.CompanyName = req.CompanyName
	}
	if req.Location != "" {
		job.Location = models.Location(req.Location)
	}
	if req.SalaryRange != "" {
		job.SalaryRange = req.SalaryRange
	}
	if req.WorkType != "" {
		job.WorkType = models.WorkType(req.WorkType)
	}
	if req.Experience != "" {
		job.Experience = models.Experience(req.Experience)
	}
	if req.Education != "" {
		job.Education = req.Education
	}
	if req.Languages != nil {
		job.Languages = req.Languages
	}
	if req.JobCategory != "" {
		job.JobCategory = models.JobCategory(req.JobCategory)
	}

	// Every content edit goes back through moderation.
	job.Status = models.StatusPending

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a listing, same ownership rule as Update.
func (s *JobService) Delete(ctx context.Context, caller auth.Caller, id uint) error {
	job, err := s.jobs.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanMutate(job, caller, s.callerCompanyID(ctx, caller)); err != nil {
		return err
	}
	return s.jobs.Delete(ctx, id)
}

// Pending is the admin moderation queue.
func (s *JobService) Pending(ctx context.Context) ([]models.Job, error) {
	return s.jobs.ListByStatus(ctx, models.StatusPending)
}

// MyJobs lists the caller company's own listings, every status included.
func (s *JobService) MyJobs(ctx context.Context, caller auth.Caller) ([]models.Job, error) {
	company, err := s.companies.ByUserID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return s.jobs.ListByCompany(ctx, company.ID)
}

// MyJob returns one of the caller company's listings; a listing owned by
// someone else reads as absent.
func (s *JobService) MyJob(ctx context.Context, caller auth.Caller, id uint) (*models.Job, error) {
	company, err := s.companies.ByUserID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !job.OwnedByCompany(company.ID) {
		return nil, fmt.Errorf("%w: job not found or not owned by you", apperr.ErrNotFound)
	}
	return job, nil
}

// ApplicationsFor lists the applications on a listing for its owner or the
// admin.
func (s *JobService) ApplicationsFor(ctx context.Context, caller auth.Caller, jobID uint) ([]models.Application, error) {
	job, err := s.jobs.ByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanMutate(job, caller, s.callerCompanyID(ctx, caller)); err != nil {
		return nil, err
	}
	return s.applications.ListByJob(ctx, jobID)
}
