package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"

	"greenstack/internal/models"
	"greenstack/internal/service"

	"github.com/gin-gonic/gin"
)

const errSensorUnavailable = "sensor unavailable"

// TemperatureResponse is a temperature reading in degrees Celsius.
type TemperatureResponse struct {
	Temp float64 `json:"temp" example:"22.4"`
}

// HumidityResponse is a relative humidity reading in percent.
type HumidityResponse struct {
	Humidity float64 `json:"humidity" example:"51.3"`
}

// SoilMoistureResponse is the raw ADC reading and its band.
type SoilMoistureResponse struct {
	SoilMoisture float64 `json:"soilmoisture" example:"2310"`
	Level        string  `json:"level" example:"fairly moist"`
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// readSensor writes 503 and returns false when the reading is unavailable.
func (h *Handler) readSensor(c *gin.Context, name string, fn func(context.Context) (float64, error)) (float64, bool) {
	v, err := fn(c.Request.Context())
	if err != nil {
		if !errors.Is(err, service.ErrSensorUnavailable) {
			err = errors.Join(service.ErrSensorUnavailable, err)
		}
		h.logAndJSONError(c, http.StatusServiceUnavailable, errSensorUnavailable, "sensor_read_failed", err, "sensor", name)
		return 0, false
	}
	return v, true
}

// @Summary      Temperature
// @Tags         sensors
// @Produce      json
// @Success      200  {object}  TemperatureResponse
// @Failure      503  {object}  errorResponse
// @Router       /temperature [get]
func (h *Handler) getTemperature(c *gin.Context) {
	v, ok := h.readSensor(c, "temperature", h.services.Sensors.Temperature)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, TemperatureResponse{Temp: roundTenth(v)})
}

// @Summary      Relative humidity
// @Tags         sensors
// @Produce      json
// @Success      200  {object}  HumidityResponse
// @Failure      503  {object}  errorResponse
// @Router       /humidity [get]
func (h *Handler) getHumidity(c *gin.Context) {
	v, ok := h.readSensor(c, "humidity", h.services.Sensors.Humidity)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, HumidityResponse{Humidity: roundTenth(v)})
}

// @Summary      Soil moisture
// @Description  Raw 12-bit reading; higher is drier.
// @Tags         sensors
// @Produce      json
// @Success      200  {object}  SoilMoistureResponse
// @Failure      503  {object}  errorResponse
// @Router       /soilmoisture [get]
func (h *Handler) getSoilMoisture(c *gin.Context) {
	v, ok := h.readSensor(c, "soil_moisture", h.services.Sensors.SoilMoisture)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SoilMoistureResponse{SoilMoisture: v, Level: models.MoistureLevel(v)})
}
