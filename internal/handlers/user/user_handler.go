package user

import (
	"net/http"
	"strconv"

	"workhub-service/internal/domain/identity"
	"workhub-service/internal/middleware"
	"workhub-service/internal/pkg/response"
	userService "workhub-service/internal/service/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *userService.UserService
	logger      *zap.Logger
}

func NewUserHandler(svc *userService.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: svc,
		logger:      logger,
	}
}

// List returns every user with their role. Requires manage_users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "users retrieved", users)
}

// Me returns the calling identity's sanitized profile.
func (h *UserHandler) Me(c *gin.Context) {
	id := middleware.MustGetIdentity(c)

	view, err := h.userService.Me(c.Request.Context(), id.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "profile retrieved", view)
}

// UpdateStatus sets a user's presence. Requires authentication only.
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid user id", err)
		return
	}

	var req identity.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	if err := h.userService.UpdateStatus(c.Request.Context(), userID, req.Status); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "status updated", gin.H{
		"id":     userID,
		"status": req.Status,
	})
}
