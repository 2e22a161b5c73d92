package models

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is a registered account: a job seeker, the single admin, or the
// login half of a company profile. Profile fields are only required for
// non-company roles; a company account keeps its profile on Company.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string     `json:"name,omitempty"`
	Surname   string     `json:"surname,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Phone     string     `json:"phone,omitempty"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	ProfilePhoto string `json:"profile_photo,omitempty"`
	Role         Role   `gorm:"not null" json:"role"`

	// Resume is the storage reference of the last CV the seeker applied with.
	Resume string `json:"resume,omitempty"`

	ResetToken       string     `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}

// Company is the public profile of a role=company user.
type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyName       string `gorm:"not null" json:"company_name"`
	Email             string `gorm:"index;not null" json:"email"`
	RegistrantName    string `gorm:"not null" json:"registrant_name"`
	RegistrantSurname string `gorm:"not null" json:"registrant_surname"`
	Description       string `gorm:"type:text" json:"description"`
	Phone             string `gorm:"not null" json:"phone"`
	ProfilePhoto      string `json:"profile_photo,omitempty"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	// 'omitempty' prevents infinite loops when fetching a Company -> Jobs -> ...
	Jobs []Job `gorm:"foreignKey:PosterCompanyID" json:"jobs,omitempty"`
}

// Job is a listing. It is created in StatusPending and only an admin moves
// it to approved/rejected; any content edit drops it back to pending.
type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	CompanyName string         `gorm:"not null" json:"company_name"`
	Location    Location       `gorm:"not null" json:"location"`
	SalaryRange string         `json:"salary_range,omitempty"`
	WorkType    WorkType       `gorm:"not null" json:"work_type"`
	Experience  Experience     `gorm:"not null" json:"experience"`
	Education   string         `gorm:"not null" json:"education"`
	Languages   pq.StringArray `gorm:"type:text[]" json:"languages"`
	JobCategory JobCategory    `gorm:"not null" json:"job_category"`

	// CustomID is the human-readable listing code shown to applicants,
	// distinct from the database primary key.
	CustomID string `gorm:"uniqueIndex;not null" json:"custom_id"`

	// Exactly one of the two poster columns is set; use SetPoster/Poster
	// instead of touching them directly.
	PosterUserID    *uint `json:"poster_user_id,omitempty"`
	PosterCompanyID *uint `json:"poster_company_id,omitempty"`

	Email  string    `gorm:"not null" json:"email"`
	Status JobStatus `gorm:"not null;default:'pending'" json:"status"`
}

// BeforeCreate guards the poster invariant at the storage boundary for code
// paths that build a Job without going through SetPoster.
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.PosterUserID != nil && j.PosterCompanyID != nil {
		return errors.New("job poster must be a user or a company, not both")
	}
	if j.PosterUserID == nil && j.PosterCompanyID == nil {
		return errors.New("job has no poster")
	}
	return nil
}

// SetPoster records the owning entity of the listing.
func (j *Job) SetPoster(p Poster) {
	j.PosterUserID = nil
	j.PosterCompanyID = nil
	id := p.id
	if p.kind == posterCompany {
		j.PosterCompanyID = &id
	} else {
		j.PosterUserID = &id
	}
}

// Poster returns the owning entity, or false when the record predates the
// invariant and has neither column set.
func (j *Job) Poster() (Poster, bool) {
	switch {
	case j.PosterCompanyID != nil:
		return CompanyPoster(*j.PosterCompanyID), true
	case j.PosterUserID != nil:
		return UserPoster(*j.PosterUserID), true
	}
	return Poster{}, false
}

// OwnedByCompany reports whether the listing belongs to the given company.
func (j *Job) OwnedByCompany(companyID uint) bool {
	return j.PosterCompanyID != nil && *j.PosterCompanyID == companyID
}

type posterKind int

const (
	posterUser posterKind = iota
	posterCompany
)

// Poster is the tagged union of the two entities that can own a listing.
// The zero value is meaningless; construct via UserPoster or CompanyPoster,
// which makes "both set" and "neither set" unrepresentable.
type Poster struct {
	kind posterKind
	id   uint
}

func UserPoster(id uint) Poster    { return Poster{kind: posterUser, id: id} }
func CompanyPoster(id uint) Poster { return Poster{kind: posterCompany, id: id} }

func (p Poster) IsCompany() bool { return p.kind == posterCompany }
func (p Poster) ID() uint        { return p.id }

// SavedJob is one bookmark. The composite key gives save/unsave set
// semantics directly in the store, with no read-modify-write of a list.
type SavedJob struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	JobID     uint      `gorm:"primaryKey" json:"job_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Application is a persisted job application. The unique index makes apply
// idempotent per (job, applicant); the notification email references it.
type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	JobID       uint   `gorm:"uniqueIndex:idx_job_applicant;not null" json:"job_id"`
	ApplicantID uint   `gorm:"uniqueIndex:idx_job_applicant;not null" json:"applicant_id"`
	CVPath      string `gorm:"not null" json:"cv_path"`
}
