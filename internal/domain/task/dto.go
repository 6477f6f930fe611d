package task

import "time"

// CreateTaskRequest for creating a task. New tasks always start pending.
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=100"`
	Description string    `json:"description" binding:"required,min=10"`
	AssignedTo  int64     `json:"assigned_to" binding:"required,gt=0"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Attachment  string    `json:"attachment" binding:"omitempty,url"`
}

// UpdateTaskRequest for partial task updates. Nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=3,max=100"`
	Description *string    `json:"description" binding:"omitempty,min=10"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
	AssignedTo  *int64     `json:"assigned_to" binding:"omitempty,gt=0"`
	DueDate     *time.Time `json:"due_date"`
	Attachment  *string    `json:"attachment" binding:"omitempty,url"`
}

// ListFilter narrows task listings.
type ListFilter struct {
	Status     string
	AssignedTo int64
}

// TaskView is the wire representation of a task.
type TaskView struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	DueDate     time.Time `json:"due_date"`
	Attachment  string    `json:"attachment,omitempty"`
	AssignedTo  UserRef   `json:"assigned_to"`
	CreatedBy   UserRef   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTaskView flattens a task entity for responses.
func NewTaskView(t *Task) TaskView {
	v := TaskView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDate:     t.DueDate,
		AssignedTo:  t.AssignedTo,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Attachment.Valid {
		v.Attachment = t.Attachment.String
	}
	return v
}
