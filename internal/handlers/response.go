package handlers

import (
	"errors"

	"greenstack/internal/repository"
	"greenstack/internal/service"

	"github.com/gin-gonic/gin"
)

// Stable error codes carried in failure bodies.
const (
	codeStorageUnavailable = "STORAGE_UNAVAILABLE"
	codeParseError         = "PARSE_ERROR"
	codeConnectTimeout     = "CONNECT_TIMEOUT"
	codeInvalidRequest     = "INVALID_REQUEST"
	codeSensorUnavailable  = "SENSOR_UNAVAILABLE"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// errorCode maps domain errors to their API code. Unknown errors map to "".
func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, service.ErrConnectTimeout):
		return codeConnectTimeout
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidTimeRange):
		return codeInvalidRequest
	case errors.Is(err, service.ErrSensorUnavailable):
		return codeSensorUnavailable
	case errors.Is(err, repository.ErrParse):
		return codeParseError
	case errors.Is(err, repository.ErrStorageUnavailable):
		return codeStorageUnavailable
	default:
		return ""
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, errorResponse{Error: userMsg, Code: errorCode(err)})
}
