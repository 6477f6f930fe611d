package app

import (
	"workhub-service/internal/domain/identity"
	authHandler "workhub-service/internal/handlers/auth"
	jobHandler "workhub-service/internal/handlers/job"
	reportHandler "workhub-service/internal/handlers/report"
	taskHandler "workhub-service/internal/handlers/task"
	userHandler "workhub-service/internal/handlers/user"
	wsHandler "workhub-service/internal/handlers/websocket"
	"workhub-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	UserHandler    *userHandler.UserHandler
	TaskHandler    *taskHandler.TaskHandler
	JobHandler     *jobHandler.JobHandler
	ReportHandler  *reportHandler.ReportHandler
	WSHandler      *wsHandler.WebSocketHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "ok",
			"ws_clients": h.WSHandler.ClientCount(),
		})
	})

	// WebSocket upgrade; token arrives via query param
	r.GET("/ws", h.AuthMiddleware.Auth(), h.WSHandler.HandleConnection)

	api := r.Group("/api")

	// ==================== Public ====================
	api.POST("/login", h.AuthHandler.Login)
	api.POST("/job-seekers", h.JobHandler.Apply)
	api.GET("/jobs", h.JobHandler.List)

	// ==================== Authenticated ====================
	authed := api.Group("")
	authed.Use(h.AuthMiddleware.Auth())
	{
		authed.POST("/logout", h.AuthHandler.Logout)
		authed.GET("/users/me", h.UserHandler.Me)
		authed.PUT("/users/:id/status", h.UserHandler.UpdateStatus)
		authed.GET("/tasks", h.TaskHandler.List)
		authed.PUT("/tasks/:id", h.TaskHandler.Update)
	}

	// ==================== Permission-gated ====================
	api.GET("/users", append(
		h.AuthMiddleware.WithPermission(identity.PermManageUsers),
		h.UserHandler.List,
	)...)

	api.POST("/tasks", append(
		h.AuthMiddleware.WithPermission(identity.PermManageTasks),
		h.TaskHandler.Create,
	)...)

	api.POST("/jobs", append(
		h.AuthMiddleware.WithPermission(identity.PermManageJobs),
		h.JobHandler.Create,
	)...)

	api.GET("/jobs/:jobId/applicants", append(
		h.AuthMiddleware.WithPermission(identity.PermReviewApplicants),
		h.JobHandler.Applicants,
	)...)

	api.GET("/job-seekers", append(
		h.AuthMiddleware.WithPermission(identity.PermReviewApplicants),
		h.JobHandler.AllApplicants,
	)...)

	api.GET("/reports/dashboard", append(
		h.AuthMiddleware.WithPermission(identity.PermViewReports),
		h.ReportHandler.Dashboard,
	)...)
}
