package task

import (
	"context"
	"database/sql"

	"workhub-service/internal/domain/task"

	"go.uber.org/zap"
)

// TaskStore is the persistence surface task management needs.
type TaskStore interface {
	List(ctx context.Context, filter task.ListFilter) ([]task.Task, error)
	FindByID(ctx context.Context, id int64) (*task.Task, error)
	Create(ctx context.Context, t *task.Task) error
	Update(ctx context.Context, id int64, req task.UpdateTaskRequest) (*task.Task, error)
}

type TaskService struct {
	store  TaskStore
	logger *zap.Logger
}

func NewTaskService(store TaskStore, logger *zap.Logger) *TaskService {
	return &TaskService{store: store, logger: logger}
}

// List returns tasks matching the filter, newest first.
func (s *TaskService) List(ctx context.Context, filter task.ListFilter) ([]task.TaskView, error) {
	tasks, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]task.TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, task.NewTaskView(&tasks[i]))
	}
	return views, nil
}

// Create records a new task assigned by the calling identity. New tasks
// always start pending.
func (s *TaskService) Create(ctx context.Context, creatorID int64, req task.CreateTaskRequest) (*task.TaskView, error) {
	t := &task.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       task.StatusPending,
		AssignedToID: req.AssignedTo,
		CreatedByID:  creatorID,
		DueDate:      req.DueDate,
	}
	if req.Attachment != "" {
		t.Attachment = sql.NullString{String: req.Attachment, Valid: true}
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	// Reload to pick up assignee/creator refs
	created, err := s.store.FindByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created",
		zap.Int64("task_id", created.ID),
		zap.Int64("assigned_to", created.AssignedToID),
		zap.Int64("created_by", creatorID))

	view := task.NewTaskView(created)
	return &view, nil
}

// Update applies a partial update and returns the refreshed task.
func (s *TaskService) Update(ctx context.Context, id int64, req task.UpdateTaskRequest) (*task.TaskView, error) {
	updated, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated", zap.Int64("task_id", id))

	view := task.NewTaskView(updated)
	return &view, nil
}
