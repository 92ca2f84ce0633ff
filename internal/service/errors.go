package service

import "errors"

// Domain errors surfaced to the API layer.
var (
	ErrConnectTimeout     = errors.New("station connect timed out")
	ErrInvalidCredentials = errors.New("ssid is required")
	ErrSensorUnavailable  = errors.New("sensor unavailable")
	ErrActuator           = errors.New("pump output failed")
)
