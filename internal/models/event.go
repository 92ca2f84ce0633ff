package models

import "time"

// Event types recorded in the device log.
const (
	EventPumpOn             = "PUMP_ON"
	EventPumpOff            = "PUMP_OFF"
	EventWifiConnected      = "WIFI_CONNECTED"
	EventWifiConnectFailed  = "WIFI_CONNECT_FAILED"
	EventAPStarted          = "AP_STARTED"
	EventCredentialsSaved   = "CREDENTIALS_SAVED"
	EventCredentialsCleared = "CREDENTIALS_CLEARED"
)

// Event is a single log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
