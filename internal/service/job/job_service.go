package job

import (
	"context"
	"database/sql"
	"strings"

	"workhub-service/internal/domain/job"

	"go.uber.org/zap"
)

// JobStore is the persistence surface job management needs.
type JobStore interface {
	List(ctx context.Context, status string) ([]job.Job, error)
	FindWithApplicants(ctx context.Context, id int64) (*job.Job, error)
	Create(ctx context.Context, j *job.Job) error
	CreateApplicant(ctx context.Context, a *job.Applicant) error
	ListApplicants(ctx context.Context) ([]job.Applicant, error)
}

type JobService struct {
	store  JobStore
	logger *zap.Logger
}

func NewJobService(store JobStore, logger *zap.Logger) *JobService {
	return &JobService{store: store, logger: logger}
}

// List returns postings with their applicants, optionally filtered by status.
func (s *JobService) List(ctx context.Context, status string) ([]job.JobView, error) {
	jobs, err := s.store.List(ctx, status)
	if err != nil {
		return nil, err
	}

	views := make([]job.JobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, job.NewJobView(&jobs[i]))
	}
	return views, nil
}

// Create records a new posting by the calling identity. New postings always
// start open.
func (s *JobService) Create(ctx context.Context, creatorID int64, req job.CreateJobRequest) (*job.JobView, error) {
	j := &job.Job{
		Title:       req.Title,
		Description: req.Description,
		Status:      job.StatusOpen,
		CreatedByID: creatorID,
	}
	if req.Attachment != "" {
		j.Attachment = sql.NullString{String: req.Attachment, Valid: true}
	}

	if err := s.store.Create(ctx, j); err != nil {
		return nil, err
	}

	created, err := s.store.FindWithApplicants(ctx, j.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job created",
		zap.Int64("job_id", created.ID),
		zap.Int64("created_by", creatorID))

	view := job.NewJobView(created)
	return &view, nil
}

// Apply records a public job application. Applicant emails are unique
// across all postings.
func (s *JobService) Apply(ctx context.Context, req job.ApplyRequest) (*job.Applicant, error) {
	a := &job.Applicant{
		Name:            req.Name,
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		AppliedJobID:    req.AppliedJobID,
	}

	if err := s.store.CreateApplicant(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("application received",
		zap.Int64("applicant_id", a.ID),
		zap.Int64("job_id", a.AppliedJobID))

	return a, nil
}

// Applicants returns a posting's applicants, most experienced first.
func (s *JobService) Applicants(ctx context.Context, jobID int64) ([]job.Applicant, error) {
	j, err := s.store.FindWithApplicants(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Applicants == nil {
		return []job.Applicant{}, nil
	}
	return j.Applicants, nil
}

// AllApplicants returns every applicant with the posting they applied to.
func (s *JobService) AllApplicants(ctx context.Context) ([]job.Applicant, error) {
	applicants, err := s.store.ListApplicants(ctx)
	if err != nil {
		return nil, err
	}
	if applicants == nil {
		applicants = []job.Applicant{}
	}
	return applicants, nil
}
