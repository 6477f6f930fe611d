package job

import (
	"database/sql"
	"time"
)

// Job posting statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// UserRef is the trimmed identity shape embedded in job payloads.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Job is a posting applicants can apply to.
type Job struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      string         `json:"status" db:"status"`
	CreatedByID int64          `json:"created_by_id" db:"created_by_id"`
	Attachment  sql.NullString `json:"-" db:"attachment"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	CreatedBy  UserRef     `json:"created_by" db:"-"`
	Applicants []Applicant `json:"applicants,omitempty" db:"-"`
}

// Applicant is a job seeker who applied to a posting. Email is unique
// across all applicants.
type Applicant struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Skills          string    `json:"skills" db:"skills"`
	ExperienceYears int       `json:"experience_years" db:"experience_years"`
	AppliedJobID    int64     `json:"applied_job_id" db:"applied_job_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	AppliedJob *JobRef `json:"applied_job,omitempty" db:"-"`
}

// JobRef is the trimmed job shape embedded in applicant payloads.
type JobRef struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}
