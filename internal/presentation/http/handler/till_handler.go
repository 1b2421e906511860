package handler

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lromero86/tacopos-api/internal/application/service"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/request"
	"github.com/lromero86/tacopos-api/internal/presentation/http/dto/response"
)

// TillHandler serves the till state: the one-shot snapshot, the live
// stream and the business date cutoff
type TillHandler struct {
	tillService *service.TillService
	sessions    *service.SessionManager
}

// NewTillHandler creates a new till handler
func NewTillHandler(tillService *service.TillService, sessions *service.SessionManager) *TillHandler {
	return &TillHandler{tillService: tillService, sessions: sessions}
}

// GetTill returns the full till state for one render
// @Summary Till snapshot
// @Description Active tab, open tabs, daily report, recent expenses and history
// @Tags till
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /till [get]
func (h *TillHandler) GetTill(c *gin.Context) {
	snap, err := h.tillService.Snapshot(GetOperatorID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Till state retrieved", response.NewTillResponse(snap))
}

// Stream pushes a fresh till snapshot over server-sent events each
// time the underlying data changes. The client renders whatever
// arrives, there is no diffing protocol.
// @Summary Till stream
// @Description Server-sent events stream of till snapshots
// @Tags till
// @Security BearerAuth
// @Produce text/event-stream
// @Router /till/stream [get]
func (h *TillHandler) Stream(c *gin.Context) {
	uid := GetOperatorID(c)

	changes, cancel, err := h.tillService.Watch(uid)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	send := func() bool {
		snap, err := h.tillService.Snapshot(uid)
		if err != nil {
			// Session closed underneath the stream, end it.
			return false
		}
		c.SSEvent("till", response.NewTillResponse(snap))
		return true
	}

	// Initial state, then one event per change.
	if !send() {
		return
	}
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case _, ok := <-changes:
			if !ok {
				return false
			}
			return send()
		case <-heartbeat.C:
			c.SSEvent("ping", nil)
			return true
		}
	})
}

// ChangeCutoff switches the session to another business date
// @Summary Change cutoff
// @Description Rescope the till to a different business date (YYYY-MM-DD)
// @Tags till
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CutoffRequest true "Business date"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /till/cutoff [put]
func (h *TillHandler) ChangeCutoff(c *gin.Context) {
	var req request.CutoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	uid := GetOperatorID(c)
	if err := h.sessions.ChangeCutoff(c.Request.Context(), uid, req.Date); err != nil {
		response.Error(c, err)
		return
	}

	snap, err := h.tillService.Snapshot(uid)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cutoff changed", response.NewTillResponse(snap))
}
