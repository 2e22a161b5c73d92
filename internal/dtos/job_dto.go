package dtos

import (
	"github.com/vacansy/vacansy-api/internal/models"
	"github.com/vacansy/vacansy-api/internal/policy"
)

type JobCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	WorkType    string `json:"work_type" binding:"required"`
	Experience  string `json:"experience" binding:"required"`
	Education   string `json:"education" binding:"required"`
	JobCategory string `json:"job_category" binding:"required"`

	// Optional fields
	SalaryRange string   `json:"salary_range"`
	Languages   []string `json:"languages"`
}

// JobUpdateRequest carries a partial edit: empty fields keep their stored
// value. A nil Languages slice keeps the old list, an empty one clears it.
type JobUpdateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	SalaryRange string   `json:"salary_range"`
	WorkType    string   `json:"work_type"`
	Experience  string   `json:"experience"`
	Education   string   `json:"education"`
	Languages   []string `json:"languages"`
	JobCategory string   `json:"job_category"`
}

type JobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

type JobListQuery struct {
	Location    string `form:"location"`
	JobCategory string `form:"jobCategory"`
	WorkType    string `form:"workType"`
}

// JobView is the listing as returned to a caller: the record plus the
// resolved contact projection on approved jobs.
type JobView struct {
	models.Job
	Contact *policy.Contact `json:"contact,omitempty"`
}
