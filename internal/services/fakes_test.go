package services

// In-memory store fakes for service tests. They mirror the store contracts,
// including the apperr translation the gorm implementations perform.

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/models"
	"github.com/vacansy/vacansy-api/internal/store"
)

type fakeUserStore struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]models.User{}, nextID: 1}
}

func (s *fakeUserStore) Create(_ context.Context, u *models.User) error {
	u.ID = s.nextID
	s.nextID++
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) ByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	return &u, nil
}

func (s *fakeUserStore) ByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
}

func (s *fakeUserStore) Update(_ context.Context, u *models.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return fmt.Errorf("%w: user", apperr.ErrNotFound)
	}
	s.users[u.ID] = *u
	return nil
}

func (s *fakeUserStore) CountByRole(_ context.Context, role models.Role) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeCompanyStore struct {
	companies map[uint]models.Company
	nextID    uint
	users     *fakeUserStore
	jobs      *fakeJobStore
}

func newFakeCompanyStore(users *fakeUserStore, jobs *fakeJobStore) *fakeCompanyStore {
	return &fakeCompanyStore{
		companies: map[uint]models.Company{},
		nextID:    1,
		users:     users,
		jobs:      jobs,
	}
}

func (s *fakeCompanyStore) CreateWithUser(ctx context.Context, u *models.User, c *models.Company) error {
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	c.UserID = u.ID
	c.ID = s.nextID
	s.nextID++
	s.companies[c.ID] = *c
	return nil
}

func (s *fakeCompanyStore) ByID(_ context.Context, id uint) (*models.Company, error) {
	c, ok := s.companies[id]
	if !ok {
		return nil, fmt.Errorf("%w: company", apperr.ErrNotFound)
	}
	return &c, nil
}

func (s *fakeCompanyStore) ByUserID(_ context.Context, userID uint) (*models.Company, error) {
	for _, c := range s.companies {
		if c.UserID == userID {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: company", apperr.ErrNotFound)
}

func (s *fakeCompanyStore) ByEmail(_ context.Context, email string) (*models.Company, error) {
	for _, c := range s.companies {
		if c.Email == email {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: company", apperr.ErrNotFound)
}

func (s *fakeCompanyStore) List(_ context.Context) ([]models.Company, error) {
	out := make([]models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCompanyStore) ByIDWithApprovedJobs(ctx context.Context, id uint) (*models.Company, error) {
	c, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.jobs != nil {
		for _, j := range s.jobs.jobs {
			if j.OwnedByCompany(c.ID) && j.Status == models.StatusApproved {
				c.Jobs = append(c.Jobs, j)
			}
		}
	}
	return c, nil
}

type fakeJobStore struct {
	jobs   map[uint]models.Job
	nextID uint
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: map[uint]models.Job{}, nextID: 1}
}

func (s *fakeJobStore) Create(_ context.Context, j *models.Job) error {
	if err := j.BeforeCreate(nil); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	j.ID = s.nextID
	s.nextID++
	s.jobs[j.ID] = *j
	return nil
}

func (s *fakeJobStore) ByID(_ context.Context, id uint) (*models.Job, error) {
	j, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: job", apperr.ErrNotFound)
	}
	return &j, nil
}

func (s *fakeJobStore) Update(_ context.Context, j *models.Job) error {
	if _, ok := s.jobs[j.ID]; !ok {
		return fmt.Errorf("%w: job", apperr.ErrNotFound)
	}
	s.jobs[j.ID] = *j
	return nil
}

func (s *fakeJobStore) Delete(_ context.Context, id uint) error {
	if _, ok := s.jobs[id]; !ok {
		return fmt.Errorf("%w: job", apperr.ErrNotFound)
	}
	delete(s.jobs, id)
	return nil
}

func (s *fakeJobStore) List(_ context.Context, f store.JobFilter) ([]models.Job, error) {
	var out []models.Job
	for _, j := range s.jobs {
		switch {
		case f.AllStatuses:
		case f.OwnerCompanyID != 0:
			if j.Status != models.StatusApproved && !j.OwnedByCompany(f.OwnerCompanyID) {
				continue
			}
		default:
			if j.Status != models.StatusApproved {
				continue
			}
		}
		if f.Location != "" && string(j.Location) != f.Location {
			continue
		}
		if f.JobCategory != "" && string(j.JobCategory) != f.JobCategory {
			continue
		}
		if f.WorkType != "" && string(j.WorkType) != f.WorkType {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (s *fakeJobStore) ListByStatus(_ context.Context, status models.JobStatus) ([]models.Job, error) {
	var out []models.Job
	for _, j := range s.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

func (s *fakeJobStore) ListByCompany(_ context.Context, companyID uint) ([]models.Job, error) {
	var out []models.Job
	for _, j := range s.jobs {
		if j.OwnedByCompany(companyID) {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

type savedKey struct {
	userID uint
	jobID  uint
}

type fakeSavedJobStore struct {
	saved map[savedKey]bool
	jobs  *fakeJobStore
}

func newFakeSavedJobStore(jobs *fakeJobStore) *fakeSavedJobStore {
	return &fakeSavedJobStore{saved: map[savedKey]bool{}, jobs: jobs}
}

func (s *fakeSavedJobStore) Save(_ context.Context, userID, jobID uint) error {
	s.saved[savedKey{userID, jobID}] = true
	return nil
}

func (s *fakeSavedJobStore) Unsave(_ context.Context, userID, jobID uint) error {
	delete(s.saved, savedKey{userID, jobID})
	return nil
}

func (s *fakeSavedJobStore) ListJobs(_ context.Context, userID uint) ([]models.Job, error) {
	var out []models.Job
	for key := range s.saved {
		if key.userID != userID {
			continue
		}
		if j, ok := s.jobs.jobs[key.jobID]; ok {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

type appKey struct {
	jobID       uint
	applicantID uint
}

type fakeApplicationStore struct {
	apps   map[appKey]models.Application
	nextID uint
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[appKey]models.Application{}, nextID: 1}
}

func (s *fakeApplicationStore) Upsert(_ context.Context, a *models.Application) error {
	key := appKey{a.JobID, a.ApplicantID}
	if existing, ok := s.apps[key]; ok {
		existing.CVPath = a.CVPath
		s.apps[key] = existing
		*a = existing
		return nil
	}
	a.ID = s.nextID
	s.nextID++
	s.apps[key] = *a
	return nil
}

func (s *fakeApplicationStore) ListByJob(_ context.Context, jobID uint) ([]models.Application, error) {
	var out []models.Application
	for key, a := range s.apps {
		if key.jobID == jobID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out, nil
}

type sentApplication struct {
	to             string
	jobTitle       string
	applicantEmail string
	cvPath         string
}

type sentReset struct {
	to    string
	token string
}

type fakeMailer struct {
	applications []sentApplication
	resets       []sentReset
	err          error
}

func (m *fakeMailer) SendApplication(to, jobTitle, applicantEmail, cvPath string) error {
	if m.err != nil {
		return m.err
	}
	m.applications = append(m.applications, sentApplication{to, jobTitle, applicantEmail, cvPath})
	return nil
}

func (m *fakeMailer) SendPasswordReset(to, token string) error {
	if m.err != nil {
		return m.err
	}
	m.resets = append(m.resets, sentReset{to, token})
	return nil
}

type fakeUploader struct {
	uploads []string
	err     error
}

func (u *fakeUploader) UploadCV(_ context.Context, filename string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	path := "/cvs/" + strings.ToLower(filename)
	u.uploads = append(u.uploads, path)
	return path, nil
}
