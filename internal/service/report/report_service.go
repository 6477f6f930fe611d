package report

import (
	"context"
	"encoding/json"
	"time"

	"workhub-service/internal/domain/job"
	"workhub-service/internal/domain/report"
	"workhub-service/internal/domain/task"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statsCacheKey = "cache:dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// Counters is the aggregate surface the dashboard draws from.
type Counters interface {
	CountUsers(ctx context.Context) (int64, error)
	CountTasks(ctx context.Context) (int64, error)
	CountTasksByStatus(ctx context.Context, status string) (int64, error)
	CountJobs(ctx context.Context) (int64, error)
	CountJobsByStatus(ctx context.Context, status string) (int64, error)
	CountApplicants(ctx context.Context) (int64, error)
}

type ReportService struct {
	counters Counters
	cache    *redis.Client
	logger   *zap.Logger
}

// NewReportService builds the dashboard aggregator. cache may be nil, in
// which case every request hits the store.
func NewReportService(counters Counters, cache *redis.Client, logger *zap.Logger) *ReportService {
	return &ReportService{counters: counters, cache: cache, logger: logger}
}

// DashboardStats aggregates headline counts, served from a short-lived
// cache so dashboard polling does not hammer the store.
func (s *ReportService) DashboardStats(ctx context.Context) (*report.DashboardStats, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	stats, err := s.collect(ctx)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *ReportService) collect(ctx context.Context) (*report.DashboardStats, error) {
	var stats report.DashboardStats
	var err error

	if stats.TotalUsers, err = s.counters.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalTasks, err = s.counters.CountTasks(ctx); err != nil {
		return nil, err
	}
	if stats.CompletedTasks, err = s.counters.CountTasksByStatus(ctx, task.StatusCompleted); err != nil {
		return nil, err
	}
	if stats.PendingTasks, err = s.counters.CountTasksByStatus(ctx, task.StatusPending); err != nil {
		return nil, err
	}
	if stats.TotalJobs, err = s.counters.CountJobs(ctx); err != nil {
		return nil, err
	}
	if stats.OpenJobs, err = s.counters.CountJobsByStatus(ctx, job.StatusOpen); err != nil {
		return nil, err
	}
	if stats.TotalApplicants, err = s.counters.CountApplicants(ctx); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *ReportService) fromCache(ctx context.Context) *report.DashboardStats {
	if s.cache == nil {
		return nil
	}

	data, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}

	var stats report.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		s.logger.Warn("dashboard cache corrupt", zap.Error(err))
		return nil
	}
	return &stats
}

func (s *ReportService) toCache(ctx context.Context, stats *report.DashboardStats) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}
