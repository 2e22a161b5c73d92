package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type applyCall struct {
	caller auth.Caller
	jobID  uint
	cvName string
	cv     string
}

// stubSeeker records what the handler hands to the workflow.
type stubSeeker struct {
	applied     []applyCall
	application *models.Application
	saved       []models.Job
}

func (s *stubSeeker) Apply(_ context.Context, caller auth.Caller, jobID uint, cvName string, cv io.Reader) (*models.Application, error) {
	data, err := io.ReadAll(cv)
	if err != nil {
		return nil, err
	}
	s.applied = append(s.applied, applyCall{caller: caller, jobID: jobID, cvName: cvName, cv: string(data)})
	return s.application, nil
}

func (s *stubSeeker) Save(context.Context, auth.Caller, uint) ([]models.Job, error) {
	return s.saved, nil
}

func (s *stubSeeker) Unsave(context.Context, auth.Caller, uint) ([]models.Job, error) {
	return s.saved, nil
}

func (s *stubSeeker) SavedJobs(context.Context, auth.Caller) ([]models.Job, error) {
	return s.saved, nil
}

// newSeekerRouter mirrors the live route layout for the seeker group.
func newSeekerRouter(issuer *auth.TokenIssuer, svc SeekerWorkflow) *gin.Engine {
	h := NewSeekerHandler(svc)
	r := gin.New()
	seeker := r.Group("/jobs", auth.RequireAuth(issuer), auth.RequireRoles(models.RoleSeeker))
	{
		seeker.POST("/:id/apply", h.Apply)
		seeker.POST("/:id/save", h.Save)
		seeker.GET("/saved", h.SavedJobs)
	}
	return r
}

// multipartBody builds a multipart payload with one file part, or none when
// field is empty.
func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func postMultipart(r *gin.Engine, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSeekerHandler_Apply(t *testing.T) {
	issuer := auth.NewTokenIssuer("seeker-handler-test-secret", time.Hour)
	seekerToken, err := issuer.Issue(5, models.RoleSeeker)
	require.NoError(t, err)

	t.Run("Should reject an application without a CV attachment", func(t *testing.T) {
		stub := &stubSeeker{}
		r := newSeekerRouter(issuer, stub)

		body, contentType := multipartBody(t, "", "", "")
		w := postMultipart(r, "/jobs/3/apply", seekerToken, body, contentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CV file is required")
		assert.Empty(t, stub.applied)
	})

	t.Run("Should reject a file sent under the wrong part name", func(t *testing.T) {
		stub := &stubSeeker{}
		r := newSeekerRouter(issuer, stub)

		body, contentType := multipartBody(t, "resume", "cv.pdf", "pdf-bytes")
		w := postMultipart(r, "/jobs/3/apply", seekerToken, body, contentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, stub.applied)
	})

	t.Run("Should hand the CV to the workflow and return the application reference", func(t *testing.T) {
		stub := &stubSeeker{application: &models.Application{
			ID:          7,
			JobID:       3,
			ApplicantID: 5,
			CVPath:      "/srv/vacansy/uploads/cvs/169_cv.pdf",
		}}
		r := newSeekerRouter(issuer, stub)

		body, contentType := multipartBody(t, "cv", "cv.pdf", "pdf-bytes")
		w := postMultipart(r, "/jobs/3/apply", seekerToken, body, contentType)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"applicationId":7`)
		// Server storage locations stay out of the response.
		assert.NotContains(t, w.Body.String(), "/srv/vacansy")

		require.Len(t, stub.applied, 1)
		call := stub.applied[0]
		assert.Equal(t, uint(5), call.caller.ID)
		assert.Equal(t, uint(3), call.jobID)
		assert.Equal(t, "cv.pdf", call.cvName)
		assert.Equal(t, "pdf-bytes", call.cv)
	})

	t.Run("Should reject a non-numeric job id", func(t *testing.T) {
		stub := &stubSeeker{}
		r := newSeekerRouter(issuer, stub)

		body, contentType := multipartBody(t, "cv", "cv.pdf", "pdf-bytes")
		w := postMultipart(r, "/jobs/abc/apply", seekerToken, body, contentType)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, stub.applied)
	})

	t.Run("Should keep non-seeker roles out of the route", func(t *testing.T) {
		stub := &stubSeeker{}
		r := newSeekerRouter(issuer, stub)

		companyToken, err := issuer.Issue(9, models.RoleCompany)
		require.NoError(t, err)

		body, contentType := multipartBody(t, "cv", "cv.pdf", "pdf-bytes")
		w := postMultipart(r, "/jobs/3/apply", companyToken, body, contentType)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, stub.applied)
	})
}
