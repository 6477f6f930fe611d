package postgres

import (
	"context"
	"errors"
	"fmt"

	"workhub-service/internal/domain/job"
	xerrors "workhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

const jobSelect = `
	SELECT j.id, j.title, j.description, j.status, j.created_by_id,
	       j.attachment, j.created_at, j.updated_at, c.name, c.email
	FROM jobs j
	JOIN identities c ON c.id = j.created_by_id
`

func scanJob(row pgx.Row) (*job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Status, &j.CreatedByID,
		&j.Attachment, &j.CreatedAt, &j.UpdatedAt, &j.CreatedBy.Name, &j.CreatedBy.Email,
	)
	if err != nil {
		return nil, err
	}
	j.CreatedBy.ID = j.CreatedByID
	return &j, nil
}

// List returns postings newest first, optionally filtered by status, each
// with its applicants attached.
func (r *JobRepository) List(ctx context.Context, status string) ([]job.Job, error) {
	query := jobSelect
	var args []interface{}
	if status != "" {
		query += " WHERE j.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY j.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range jobs {
		applicants, err := r.applicantsForJob(ctx, jobs[i].ID)
		if err != nil {
			return nil, err
		}
		jobs[i].Applicants = applicants
	}

	return jobs, nil
}

// FindWithApplicants loads a posting and its applicants, most experienced
// first.
func (r *JobRepository) FindWithApplicants(ctx context.Context, id int64) (*job.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, jobSelect+" WHERE j.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	applicants, err := r.applicantsForJob(ctx, j.ID)
	if err != nil {
		return nil, err
	}
	j.Applicants = applicants

	return j, nil
}

func (r *JobRepository) applicantsForJob(ctx context.Context, jobID int64) ([]job.Applicant, error) {
	query := `
		SELECT id, name, email, skills, experience_years, applied_job_id, created_at
		FROM job_applicants
		WHERE applied_job_id = $1
		ORDER BY experience_years DESC, created_at ASC
	`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []job.Applicant
	for rows.Next() {
		var a job.Applicant
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Skills, &a.ExperienceYears, &a.AppliedJobID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, a)
	}

	return applicants, rows.Err()
}

// Create inserts a posting.
func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	query := `
		INSERT INTO jobs (title, description, status, created_by_id, attachment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		j.Title, j.Description, j.Status, j.CreatedByID, j.Attachment,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// CreateApplicant records an application. A duplicate email surfaces as
// ErrConflict, an unknown posting as ErrInvalidReference.
func (r *JobRepository) CreateApplicant(ctx context.Context, a *job.Applicant) error {
	query := `
		INSERT INTO job_applicants (name, email, skills, experience_years, applied_job_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		a.Name, a.Email, a.Skills, a.ExperienceYears, a.AppliedJobID,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// ListApplicants returns every applicant with the posting they applied to.
func (r *JobRepository) ListApplicants(ctx context.Context) ([]job.Applicant, error) {
	query := `
		SELECT a.id, a.name, a.email, a.skills, a.experience_years, a.applied_job_id, a.created_at,
		       j.id, j.title, j.description, j.status
		FROM job_applicants a
		JOIN jobs j ON j.id = a.applied_job_id
		ORDER BY a.created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []job.Applicant
	for rows.Next() {
		var a job.Applicant
		var ref job.JobRef
		err := rows.Scan(
			&a.ID, &a.Name, &a.Email, &a.Skills, &a.ExperienceYears, &a.AppliedJobID, &a.CreatedAt,
			&ref.ID, &ref.Title, &ref.Description, &ref.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		a.AppliedJob = &ref
		applicants = append(applicants, a)
	}

	return applicants, rows.Err()
}

// Count returns the total number of postings.
func (r *JobRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&n)
	return n, err
}

// CountByStatus returns the number of postings in a given status.
func (r *JobRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE status = $1`, status).Scan(&n)
	return n, err
}

// CountApplicants returns the total number of applicants across postings.
func (r *JobRepository) CountApplicants(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_applicants`).Scan(&n)
	return n, err
}
