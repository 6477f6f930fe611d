package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"workhub-service/internal/domain/task"
	xerrors "workhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.assigned_to_id,
	       t.created_by_id, t.due_date, t.attachment, t.created_at, t.updated_at,
	       a.name, a.email, c.name, c.email
	FROM tasks t
	JOIN identities a ON a.id = t.assigned_to_id
	JOIN identities c ON c.id = t.created_by_id
`

func scanTask(row pgx.Row) (*task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.AssignedToID,
		&t.CreatedByID, &t.DueDate, &t.Attachment, &t.CreatedAt, &t.UpdatedAt,
		&t.AssignedTo.Name, &t.AssignedTo.Email, &t.CreatedBy.Name, &t.CreatedBy.Email,
	)
	if err != nil {
		return nil, err
	}
	t.AssignedTo.ID = t.AssignedToID
	t.CreatedBy.ID = t.CreatedByID
	return &t, nil
}

// List returns tasks newest first, optionally filtered by status and assignee.
func (r *TaskRepository) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	var conds []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("t.status = $%d", len(args)))
	}
	if filter.AssignedTo > 0 {
		args = append(args, filter.AssignedTo)
		conds = append(conds, fmt.Sprintf("t.assigned_to_id = $%d", len(args)))
	}

	query := taskSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY t.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}

// FindByID loads a single task with assignee and creator refs.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*task.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, taskSelect+" WHERE t.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return t, nil
}

// Create inserts a task. An unknown assignee surfaces as ErrInvalidReference.
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (title, description, status, assigned_to_id, created_by_id, due_date, attachment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		t.Title, t.Description, t.Status, t.AssignedToID, t.CreatedByID, t.DueDate, t.Attachment,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// Update applies the non-nil fields of req to the task and returns the
// refreshed row.
func (r *TaskRepository) Update(ctx context.Context, id int64, req task.UpdateTaskRequest) (*task.Task, error) {
	var sets []string
	var args []interface{}

	add := func(col string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.AssignedTo != nil {
		add("assigned_to_id", *req.AssignedTo)
	}
	if req.DueDate != nil {
		add("due_date", *req.DueDate)
	}
	if req.Attachment != nil {
		add("attachment", *req.Attachment)
	}
	add("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	if result.RowsAffected() == 0 {
		return nil, xerrors.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// Count returns the total number of tasks.
func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

// CountByStatus returns the number of tasks in a given status.
func (r *TaskRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE status = $1`, status).Scan(&n)
	return n, err
}
