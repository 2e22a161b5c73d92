package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vacansy/vacansy-api/internal/auth"
	"github.com/vacansy/vacansy-api/internal/dtos"
	"github.com/vacansy/vacansy-api/internal/services"
)

// JobHandler exposes the listing lifecycle and read paths.
type JobHandler struct {
	Jobs *services.JobService
}

func NewJobHandler(j *services.JobService) *JobHandler {
	return &JobHandler{Jobs: j}
}

// List is GET /jobs. Optional auth: the caller's role decides which
// statuses are visible.
func (h *JobHandler) List(c *gin.Context) {
	var q dtos.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindErr(c, err)
		return
	}

	jobs, err := h.Jobs.List(c.Request.Context(), auth.CallerFrom(c), q)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Get is GET /jobs/:id. Optional auth: unapproved listings are gated.
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	view, err := h.Jobs.Get(c.Request.Context(), auth.CallerFrom(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Create is POST /jobs, company only.
func (h *JobHandler) Create(c *gin.Context) {
	var req dtos.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	job, err := h.Jobs.Create(c.Request.Context(), auth.CallerFrom(c), &req)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Job created and pending admin approval",
		"jobId":   job.ID,
	})
}

// SetStatus is PUT /jobs/:id/status, admin only.
func (h *JobHandler) SetStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dtos.JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	job, err := h.Jobs.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job " + req.Status, "job": job})
}

// Update is PUT /jobs/:id, owning company or admin.
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindErr(c, err)
		return
	}

	job, err := h.Jobs.Update(c.Request.Context(), auth.CallerFrom(c), id, &req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated and pending admin approval", "job": job})
}

// Delete is DELETE /jobs/:id, owning company or admin.
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.Jobs.Delete(c.Request.Context(), auth.CallerFrom(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

// Pending is GET /jobs/pending, the admin moderation queue.
func (h *JobHandler) Pending(c *gin.Context) {
	jobs, err := h.Jobs.Pending(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// MyJobs is GET /jobs/me, a company's own listings.
func (h *JobHandler) MyJobs(c *gin.Context) {
	jobs, err := h.Jobs.MyJobs(c.Request.Context(), auth.CallerFrom(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// MyJob is GET /jobs/me/:id.
func (h *JobHandler) MyJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	job, err := h.Jobs.MyJob(c.Request.Context(), auth.CallerFrom(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Applications is GET /jobs/:id/applications, owning company or admin.
func (h *JobHandler) Applications(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	apps, err := h.Jobs.ApplicationsFor(c.Request.Context(), auth.CallerFrom(c), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}
