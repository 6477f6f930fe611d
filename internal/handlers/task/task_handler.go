package task

import (
	"net/http"
	"strconv"

	"workhub-service/internal/domain/task"
	"workhub-service/internal/middleware"
	"workhub-service/internal/pkg/response"
	taskService "workhub-service/internal/service/task"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService *taskService.TaskService
	logger      *zap.Logger
}

func NewTaskHandler(svc *taskService.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: svc,
		logger:      logger,
	}
}

// List returns tasks, optionally filtered by status and assignee.
func (h *TaskHandler) List(c *gin.Context) {
	filter := task.ListFilter{Status: c.Query("status")}
	if v := c.Query("assigned_to"); v != "" {
		assignedTo, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.ValidationError(c, "invalid assigned_to filter", err)
			return
		}
		filter.AssignedTo = assignedTo
	}

	tasks, err := h.taskService.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "tasks retrieved", tasks)
}

// Create records a new task. Requires manage_tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req task.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	creator := middleware.MustGetIdentity(c)

	view, err := h.taskService.Create(c.Request.Context(), creator.ID, req)
	if err != nil {
		h.logger.Warn("task creation failed",
			zap.Int64("created_by", creator.ID),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "task created", view)
}

// Update applies a partial update. Requires authentication only, so
// assignees can move their own tasks along.
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid task id", err)
		return
	}

	var req task.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	view, err := h.taskService.Update(c.Request.Context(), taskID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "task updated", view)
}
