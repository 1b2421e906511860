package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/response"
)

// ReportHandler serves the daily report and the combined history
type ReportHandler struct {
	tillService *service.TillService
}

// NewReportHandler creates a new report handler
func NewReportHandler(tillService *service.TillService) *ReportHandler {
	return &ReportHandler{tillService: tillService}
}

// GetReport returns the daily summary for the current business date
// @Summary Daily report
// @Description Sales, expenses and net profit for the current scope
// @Tags report
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /report [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	snap, err := h.tillService.Snapshot(GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report retrieved", gin.H{
		"date":   snap.Scope.Date,
		"report": response.NewReportResponse(snap.Report),
	})
}

// GetHistory returns the combined sales and expenses history, newest
// first, capped at the configured display window
// @Summary Combined history
// @Description Recent paid tabs and expenses merged into one feed
// @Tags report
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /report/history [get]
func (h *ReportHandler) GetHistory(c *gin.Context) {
	snap, err := h.tillService.Snapshot(GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "History retrieved", gin.H{
		"date":    snap.Scope.Date,
		"history": response.NewHistoryResponse(snap.History),
	})
}
