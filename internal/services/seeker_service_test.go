package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vacansy/vacansy-api/internal/apperr"
	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/models"
)

type seekerEnv struct {
	*jobEnv
	saved    *fakeSavedJobStore
	uploader *fakeUploader
	mailer   *fakeMailer
	svc      *SeekerService
}

func newSeekerEnv() *seekerEnv {
	base := newJobEnv()
	saved := newFakeSavedJobStore(base.jobs)
	uploader := &fakeUploader{}
	mailer := &fakeMailer{}
	return &seekerEnv{
		jobEnv:   base,
		saved:    saved,
		uploader: uploader,
		mailer:   mailer,
		svc: NewSeekerService(
			base.jobs, base.users, base.companies,
			saved, base.apps,
			uploader, mailer, zap.NewNop(),
		),
	}
}

// registerSeeker seeds a job-seeker account.
func (e *seekerEnv) registerSeeker(t *testing.T, email string) auth.Caller {
	t.Helper()
	user := &models.User{Name: "Nino", Email: email, PasswordHash: "x", Role: models.RoleSeeker}
	require.NoError(t, e.users.Create(context.Background(), user))
	return auth.Caller{ID: user.ID, Role: models.RoleSeeker}
}

// approvedJob seeds a company with one approved listing.
func (e *seekerEnv) approvedJob(t *testing.T) *models.Job {
	t.Helper()
	ctx := context.Background()
	caller, _ := e.registerCompany(t, "Acme", "jobs@acme.ge")
	job, err := e.jobEnv.svc.Create(ctx, caller, validJobRequest())
	require.NoError(t, err)
	job, err = e.jobEnv.svc.SetStatus(ctx, job.ID, "approved")
	require.NoError(t, err)
	return job
}

// pendingJob seeds a company with one pending listing.
func (e *seekerEnv) pendingJob(t *testing.T) *models.Job {
	t.Helper()
	caller, _ := e.registerCompany(t, "Initech", "jobs@initech.ge")
	job, err := e.jobEnv.svc.Create(context.Background(), caller, validJobRequest())
	require.NoError(t, err)
	return job
}

func TestSeekerService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("Should store the CV, record the application and notify the company", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.approvedJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")

		app, err := env.svc.Apply(ctx, seeker, job.ID, "CV.pdf", strings.NewReader("pdf-bytes"))
		require.NoError(t, err)

		assert.Equal(t, job.ID, app.JobID)
		assert.Equal(t, seeker.ID, app.ApplicantID)
		assert.Equal(t, "/cvs/cv.pdf", app.CVPath)

		// The user record carries the CV reference.
		user, err := env.users.ByID(ctx, seeker.ID)
		require.NoError(t, err)
		assert.Equal(t, "/cvs/cv.pdf", user.Resume)

		// The posting company got the notification.
		require.Len(t, env.mailer.applications, 1)
		sent := env.mailer.applications[0]
		assert.Equal(t, "jobs@acme.ge", sent.to)
		assert.Equal(t, "Backend Developer", sent.jobTitle)
		assert.Equal(t, "nino@mail.ge", sent.applicantEmail)
	})

	t.Run("Should hide a pending job behind not-found", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.pendingJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")

		_, err := env.svc.Apply(ctx, seeker, job.ID, "CV.pdf", strings.NewReader("pdf"))
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, env.mailer.applications)
	})

	t.Run("Should keep the application when the mail dispatch fails", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.approvedJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")
		env.mailer.err = apperr.ErrInternal

		_, err := env.svc.Apply(ctx, seeker, job.ID, "CV.pdf", strings.NewReader("pdf"))
		assert.ErrorIs(t, err, apperr.ErrInternal)

		apps, listErr := env.apps.ListByJob(ctx, job.ID)
		require.NoError(t, listErr)
		assert.Len(t, apps, 1)
	})

	t.Run("Should keep one application per job and applicant on reapply", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.approvedJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")

		_, err := env.svc.Apply(ctx, seeker, job.ID, "old.pdf", strings.NewReader("v1"))
		require.NoError(t, err)
		app, err := env.svc.Apply(ctx, seeker, job.ID, "new.pdf", strings.NewReader("v2"))
		require.NoError(t, err)

		apps, err := env.apps.ListByJob(ctx, job.ID)
		require.NoError(t, err)
		require.Len(t, apps, 1)
		assert.Equal(t, "/cvs/new.pdf", app.CVPath)
	})
}

func TestSeekerService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("Should save an approved job exactly once", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.approvedJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")

		saved, err := env.svc.Save(ctx, seeker, job.ID)
		require.NoError(t, err)
		require.Len(t, saved, 1)

		// Saving again is a no-op, not a duplicate.
		saved, err = env.svc.Save(ctx, seeker, job.ID)
		require.NoError(t, err)
		assert.Len(t, saved, 1)
	})

	t.Run("Should refuse to save an unapproved job", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.pendingJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")

		_, err := env.svc.Save(ctx, seeker, job.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("Should unsave idempotently", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.approvedJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")

		_, err := env.svc.Save(ctx, seeker, job.ID)
		require.NoError(t, err)

		saved, err := env.svc.Unsave(ctx, seeker, job.ID)
		require.NoError(t, err)
		assert.Empty(t, saved)

		// Unsaving a job that is not saved is fine.
		saved, err = env.svc.Unsave(ctx, seeker, job.ID)
		require.NoError(t, err)
		assert.Empty(t, saved)
	})

	t.Run("Should resolve saved ids to full job records", func(t *testing.T) {
		env := newSeekerEnv()
		job := env.approvedJob(t)
		seeker := env.registerSeeker(t, "nino@mail.ge")

		_, err := env.svc.Save(ctx, seeker, job.ID)
		require.NoError(t, err)

		jobs, err := env.svc.SavedJobs(ctx, seeker)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, "Backend Developer", jobs[0].Title)
		assert.Equal(t, job.CustomID, jobs[0].CustomID)
	})
}
