package postgres

import "context"

// StatsRepository composes the per-table counters behind the dashboard.
type StatsRepository struct {
	identities *IdentityRepository
	tasks      *TaskRepository
	jobs       *JobRepository
}

func NewStatsRepository(identities *IdentityRepository, tasks *TaskRepository, jobs *JobRepository) *StatsRepository {
	return &StatsRepository{identities: identities, tasks: tasks, jobs: jobs}
}

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.identities.Count(ctx)
}

func (r *StatsRepository) CountTasks(ctx context.Context) (int64, error) {
	return r.tasks.Count(ctx)
}

func (r *StatsRepository) CountTasksByStatus(ctx context.Context, status string) (int64, error) {
	return r.tasks.CountByStatus(ctx, status)
}

func (r *StatsRepository) CountJobs(ctx context.Context) (int64, error) {
	return r.jobs.Count(ctx)
}

func (r *StatsRepository) CountJobsByStatus(ctx context.Context, status string) (int64, error) {
	return r.jobs.CountByStatus(ctx, status)
}

func (r *StatsRepository) CountApplicants(ctx context.Context) (int64, error) {
	return r.jobs.CountApplicants(ctx)
}
