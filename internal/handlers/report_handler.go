package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/services"
)

type ReportHandler struct {
	service services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// @Summary      Task summary
// @Description  Counts by status, priority and category plus hour and cost totals
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  services.TaskSummary
// @Router       /api/reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.service.GetSummary(c.Request.Context())
	if err != nil {
		log.Printf("[report][summary][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Task report PDF
// @Tags         Reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/tasks.pdf [get]
func (h *ReportHandler) TaskReportPDF(c *gin.Context) {
	data, err := h.service.TaskReportPDF(c.Request.Context())
	if err != nil {
		log.Printf("[report][pdf][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="maintenance-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
