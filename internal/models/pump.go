package models

import "time"

// PumpRun is the single active watering run, if any.
type PumpRun struct {
	Active      bool      `json:"active"`
	ActivatedAt time.Time `json:"activated_at"`
}

// TriggerOutcome is the result of a pump trigger request.
type TriggerOutcome string

const (
	TriggerStarted        TriggerOutcome = "STARTED"
	TriggerAlreadyRunning TriggerOutcome = "ALREADY_RUNNING"
)

// PumpStatus is the read model for the pump.
type PumpStatus struct {
	Running      bool       `json:"running"`
	ActivatedAt  *time.Time `json:"activated_at,omitempty"`
	LastWatering *time.Time `json:"last_watering,omitempty"`
	DurationSec  float64    `json:"duration_sec"`
}
