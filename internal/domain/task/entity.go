package task

import (
	"database/sql"
	"time"
)

// Status values a task moves through.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// UserRef is the trimmed identity shape embedded in task payloads.
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is a unit of work assigned to one identity by another.
type Task struct {
	ID           int64          `json:"id" db:"id"`
	Title        string         `json:"title" db:"title"`
	Description  string         `json:"description" db:"description"`
	Status       string         `json:"status" db:"status"`
	AssignedToID int64          `json:"assigned_to_id" db:"assigned_to_id"`
	CreatedByID  int64          `json:"created_by_id" db:"created_by_id"`
	DueDate      time.Time      `json:"due_date" db:"due_date"`
	Attachment   sql.NullString `json:"-" db:"attachment"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`

	AssignedTo UserRef `json:"assigned_to" db:"-"`
	CreatedBy  UserRef `json:"created_by" db:"-"`
}
