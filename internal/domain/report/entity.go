package report

// DashboardStats aggregates store-wide counters for the reports endpoint.
type DashboardStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalTasks      int64 `json:"total_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	PendingTasks    int64 `json:"pending_tasks"`
	TotalJobs       int64 `json:"total_jobs"`
	OpenJobs        int64 `json:"open_jobs"`
	TotalApplicants int64 `json:"total_applicants"`
}
