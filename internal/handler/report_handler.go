package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fashionforward/psp-router/internal/dto"
	"github.com/fashionforward/psp-router/internal/service"
)

type ReportHandler struct {
	svc *service.ReportService
}

func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// GetReport handles POST /api/v1/reports/performance. An empty body is
// accepted and runs the canonical dataset under the default strategy.
func (h *ReportHandler) GetReport(c *gin.Context) {
	var req dto.ReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
				Error: "validation failed: " + err.Error(),
			})
			return
		}
	}

	report, err := h.svc.GenerateFromDataset(c.Request.Context(), req.TransactionCount, req.Strategy)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, report)
}
