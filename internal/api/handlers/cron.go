package handlers

import (
	"net/http"

	"study-archive-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// CronHandler exposes jobs meant to be triggered by an external scheduler
type CronHandler struct {
	sweep service.SweepServiceInterface
}

// NewCronHandler creates a new cron handler
func NewCronHandler(sweep service.SweepServiceInterface) *CronHandler {
	return &CronHandler{sweep: sweep}
}

// CheckGroups runs one link sweep
// @Summary Sweep group links
// @Description Probe every live group link and mark dead ones broken
// @Tags cron
// @Produce json
// @Success 200 {object} service.SweepReport "Sweep report"
// @Failure 401 {object} ErrorResponse "Invalid cron secret"
// @Failure 500 {object} ErrorResponse "Sweep failed"
// @Security BearerAuth
// @Router /cron/check-groups [get]
func (h *CronHandler) CheckGroups(c *gin.Context) {
	report, err := h.sweep.Run(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
