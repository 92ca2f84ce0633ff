package handlers

import (
	"net/http"

	"greenstack/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	pumpToggled        = "pump toggled"
	pumpAlreadyRunning = "pump already running"
	errPumpFailed      = "failed to start pump"
)

// @Summary      Start a watering run
// @Description  Runs the pump for a fixed duration. A trigger during an active run has no effect.
// @Tags         pump
// @Produce      plain
// @Success      200  {string}  string  "pump toggled"
// @Failure      500  {object}  errorResponse
// @Router       /pump_on [get]
func (h *Handler) pumpOn(c *gin.Context) {
	outcome, err := h.services.Pump.Trigger(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errPumpFailed, "pump_trigger_failed", err)
		return
	}
	if outcome == models.TriggerAlreadyRunning {
		c.String(http.StatusOK, pumpAlreadyRunning)
		return
	}
	c.String(http.StatusOK, pumpToggled)
}

// @Summary      Pump status
// @Tags         pump
// @Produce      json
// @Success      200  {object}  models.PumpStatus
// @Router       /pump/status [get]
func (h *Handler) pumpStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Pump.Status(c.Request.Context()))
}
