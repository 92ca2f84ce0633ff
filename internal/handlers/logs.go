package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"greenstack/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"
	errRange       = "'from' must be <= 'to'"
	errLoadEvents  = "failed to load events"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List device events
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.
// @Tags         events
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range, date-only means end of day"  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(PUMP_ON,PUMP_OFF,WIFI_CONNECTED,WIFI_CONNECT_FAILED,AP_STARTED,CREDENTIALS_SAVED,CREDENTIALS_CLEARED)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /events [get]
func (h *Handler) getEvents(c *gin.Context) {
	var (
		from, to time.Time
		err      error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: errFromInvalid, Code: codeInvalidRequest})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: errToInvalid, Code: codeInvalidRequest})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
	}

	events, err := h.services.EventLog.List(c.Request.Context(), service.LogFilter{
		From: from,
		To:   to,
		Type: c.Query("type"),
	})
	if errors.Is(err, service.ErrInvalidTimeRange) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: errRange, Code: codeInvalidRequest})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadEvents, "events_list_failed", err,
			"from", from, "to", to, "type", c.Query("type"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// parseQueryTime accepts RFC3339, date-time and date layouts and returns UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q, expected RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'", s)
}
