package job

import "time"

// CreateJobRequest for posting a new job. New jobs always start open.
type CreateJobRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"required,min=10"`
	Attachment  string `json:"attachment" binding:"omitempty,url"`
}

// ApplyRequest for submitting a job application (public endpoint).
type ApplyRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Skills          string `json:"skills" binding:"required,min=5"`
	ExperienceYears int    `json:"experience_years" binding:"min=0,max=50"`
	AppliedJobID    int64  `json:"applied_job_id" binding:"required,gt=0"`
}

// JobView is the wire representation of a job posting.
type JobView struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Attachment  string      `json:"attachment,omitempty"`
	CreatedBy   UserRef     `json:"created_by"`
	Applicants  []Applicant `json:"applicants"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewJobView flattens a job entity for responses.
func NewJobView(j *Job) JobView {
	v := JobView{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Status:      j.Status,
		CreatedBy:   j.CreatedBy,
		Applicants:  j.Applicants,
		CreatedAt:   j.CreatedAt,
	}
	if v.Applicants == nil {
		v.Applicants = []Applicant{}
	}
	if j.Attachment.Valid {
		v.Attachment = j.Attachment.String
	}
	return v
}
