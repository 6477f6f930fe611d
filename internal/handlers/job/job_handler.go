package job

import (
	"net/http"
	"strconv"

	"workhub-service/internal/domain/job"
	"workhub-service/internal/middleware"
	"workhub-service/internal/pkg/response"
	jobService "workhub-service/internal/service/job"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type JobHandler struct {
	jobService *jobService.JobService
	logger     *zap.Logger
}

func NewJobHandler(svc *jobService.JobService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		jobService: svc,
		logger:     logger,
	}
}

// List returns job postings with applicants (public endpoint).
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "jobs retrieved", jobs)
}

// Create posts a new job. Requires manage_jobs.
func (h *JobHandler) Create(c *gin.Context) {
	var req job.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	creator := middleware.MustGetIdentity(c)

	view, err := h.jobService.Create(c.Request.Context(), creator.ID, req)
	if err != nil {
		h.logger.Warn("job creation failed",
			zap.Int64("created_by", creator.ID),
			zap.Error(err),
		)
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "job created", view)
}

// Apply records a job application (public endpoint).
func (h *JobHandler) Apply(c *gin.Context) {
	var req job.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	applicant, err := h.jobService.Apply(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "application submitted", applicant)
}

// Applicants returns one posting's applicants. Requires review_applicants.
func (h *JobHandler) Applicants(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid job id", err)
		return
	}

	applicants, err := h.jobService.Applicants(c.Request.Context(), jobID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "applicants retrieved", applicants)
}

// AllApplicants returns every applicant. Requires review_applicants.
func (h *JobHandler) AllApplicants(c *gin.Context) {
	applicants, err := h.jobService.AllApplicants(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "applicants retrieved", applicants)
}
