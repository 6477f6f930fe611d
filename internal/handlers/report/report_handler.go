package report

import (
	"net/http"

	"workhub-service/internal/pkg/response"
	reportService "workhub-service/internal/service/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *reportService.ReportService
	logger        *zap.Logger
}

func NewReportHandler(svc *reportService.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: svc,
		logger:        logger,
	}
}

// Dashboard returns the headline counts. Requires view_reports.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	stats, err := h.reportService.DashboardStats(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "dashboard stats retrieved", stats)
}
