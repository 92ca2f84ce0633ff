package handlers

import (
	"errors"
	"net/http"

	"greenstack/internal/models"
	"greenstack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgConnected         = "Connected and credentials saved"
	msgConnectedNotSaved = "Connected, but credentials could not be saved"
	msgConnectFailed     = "Connection failed"
	msgInvalidJSON       = "Invalid JSON"
	msgSSIDRequired      = "ssid is required"
	msgResetDone         = "WiFi credentials reset to defaults"
	msgResetFailed       = "Failed to clear credentials"
	msgSwitchedToWifi    = "Switched to WiFi mode"
	msgStayedInAP        = "WiFi connection failed, staying in AP mode"
	msgSwitchedToAP      = "Switched to AP mode"
)

// ConnectRequest is the body of POST /wifi/connect.
type ConnectRequest struct {
	SSID     string `json:"ssid" binding:"required" example:"home"`
	Password string `json:"password" example:"secret"`
}

// WifiResponse is returned by every wifi mutation.
type WifiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IP      string `json:"ip,omitempty"`
	APSSID  string `json:"ap_ssid,omitempty"`
	Code    string `json:"code,omitempty"`
}

// @Summary      Connectivity status
// @Tags         wifi
// @Produce      json
// @Success      200  {object}  models.WifiStatus
// @Router       /wifi/status [get]
func (h *Handler) wifiStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Connectivity.Status(c.Request.Context()))
}

// @Summary      Join a network
// @Description  Blocks for up to the interactive connect timeout. On success the credentials are persisted. On failure the device re-runs its boot sequence with the previous credentials.
// @Tags         wifi
// @Accept       json
// @Produce      json
// @Param        body  body      ConnectRequest  true  "Network credentials"
// @Success      200   {object}  WifiResponse
// @Failure      400   {object}  WifiResponse
// @Router       /wifi/connect [post]
func (h *Handler) wifiConnect(c *gin.Context) {
	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, WifiResponse{Message: msgSSIDRequired, Code: codeInvalidRequest})
			return
		}
		c.JSON(http.StatusBadRequest, WifiResponse{Message: msgInvalidJSON, Code: codeParseError})
		return
	}

	res, err := h.services.Connectivity.UpdateCredentials(c.Request.Context(),
		models.NetworkCredentials{SSID: req.SSID, Password: req.Password})
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, WifiResponse{Message: msgSSIDRequired, Code: codeInvalidRequest})
	case err != nil:
		h.log.Warnw("wifi_connect_failed", "err", err, "ssid", req.SSID)
		c.JSON(http.StatusOK, WifiResponse{Message: msgConnectFailed, Code: errorCode(err)})
	case !res.Saved:
		c.JSON(http.StatusOK, WifiResponse{Success: true, Message: msgConnectedNotSaved, IP: res.IP, Code: codeStorageUnavailable})
	default:
		c.JSON(http.StatusOK, WifiResponse{Success: true, Message: msgConnected, IP: res.IP})
	}
}

// @Summary      Reset credentials
// @Description  Deletes the stored credentials and restarts the device shortly after responding.
// @Tags         wifi
// @Produce      json
// @Success      200  {object}  WifiResponse
// @Failure      500  {object}  WifiResponse
// @Router       /wifi/reset [post]
func (h *Handler) wifiReset(c *gin.Context) {
	if err := h.services.Connectivity.ResetCredentials(c.Request.Context()); err != nil {
		h.log.Errorw("wifi_reset_failed", "err", err)
		code := errorCode(err)
		if code == "" {
			code = codeStorageUnavailable
		}
		c.JSON(http.StatusInternalServerError, WifiResponse{Message: msgResetFailed, Code: code})
		return
	}
	c.JSON(http.StatusOK, WifiResponse{Success: true, Message: msgResetDone})

	if h.services.Restarter != nil {
		h.log.Infow("restart_scheduled", "delay", h.restartDelay)
		h.afterFunc(h.restartDelay, h.services.Restarter.Restart)
	}
}

// @Summary      Toggle access point mode
// @Description  From AP mode, tries the stored network and stays in AP mode on failure. From station mode, starts the access point.
// @Tags         wifi
// @Produce      json
// @Success      200  {object}  WifiResponse
// @Router       /wifi/toggle_ap [post]
func (h *Handler) wifiToggleAP(c *gin.Context) {
	res, err := h.services.Connectivity.ToggleMode(c.Request.Context())
	switch {
	case err != nil:
		h.log.Warnw("wifi_toggle_failed", "err", err)
		c.JSON(http.StatusOK, WifiResponse{Message: msgStayedInAP, IP: res.IP, APSSID: res.APSSID, Code: errorCode(err)})
	case res.State == models.StateStationConnected:
		c.JSON(http.StatusOK, WifiResponse{Success: true, Message: msgSwitchedToWifi, IP: res.IP})
	default:
		c.JSON(http.StatusOK, WifiResponse{Success: true, Message: msgSwitchedToAP, IP: res.IP, APSSID: res.APSSID})
	}
}
