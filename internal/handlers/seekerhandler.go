package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/models"
)

// SeekerWorkflow is the slice of the seeker service this handler drives.
type SeekerWorkflow interface {
	Apply(ctx context.Context, caller auth.Caller, jobID uint, cvName string, cv io.Reader) (*models.Application, error)
	Save(ctx context.Context, caller auth.Caller, jobID uint) ([]models.Job, error)
	Unsave(ctx context.Context, caller auth.Caller, jobID uint) ([]models.Job, error)
	SavedJobs(ctx context.Context, caller auth.Caller) ([]models.Job, error)
}

// SeekerHandler exposes the apply and save/unsave workflows.
type SeekerHandler struct {
	Seeker SeekerWorkflow
}

func NewSeekerHandler(s SeekerWorkflow) *SeekerHandler {
	return &SeekerHandler{Seeker: s}
}

// Apply is POST /jobs/:id/apply, multipart with a "cv" file.
func (h *SeekerHandler) Apply(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("cv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "CV file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not read CV file"})
		return
	}
	defer file.Close()

	application, err := h.Seeker.Apply(c.Request.Context(), auth.CallerFrom(c), id, fileHeader.Filename, file)
	if err != nil {
		respondErr(c, err)
		return
	}

	// The stored CV location is a server-side detail; the applicant only
	// needs the application reference.
	c.JSON(http.StatusOK, gin.H{
		"message":       "Application submitted",
		"applicationId": application.ID,
	})
}

// Save is POST /jobs/:id/save.
func (h *SeekerHandler) Save(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	saved, err := h.Seeker.Save(c.Request.Context(), auth.CallerFrom(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job saved", "savedJobs": saved})
}

// Unsave is DELETE /jobs/:id/save.
func (h *SeekerHandler) Unsave(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	saved, err := h.Seeker.Unsave(c.Request.Context(), auth.CallerFrom(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job removed", "savedJobs": saved})
}

// SavedJobs is GET /jobs/saved.
func (h *SeekerHandler) SavedJobs(c *gin.Context) {
	jobs, err := h.Seeker.SavedJobs(c.Request.Context(), auth.CallerFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
