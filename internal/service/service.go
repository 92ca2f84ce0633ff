package service

import (
	"context"
	"time"

	"greenstack/internal/hardware"
	"greenstack/internal/logger"
	"greenstack/internal/metrics"
	"greenstack/internal/models"
	"greenstack/internal/repository"
)

// Connectivity owns the wireless mode and the current credentials.
type Connectivity interface {
	Bootstrap(ctx context.Context) models.ConnectivityState
	Status(ctx context.Context) models.WifiStatus
	UpdateCredentials(ctx context.Context, c models.NetworkCredentials) (models.ConnectResult, error)
	ToggleMode(ctx context.Context) (models.ToggleResult, error)
	ResetCredentials(ctx context.Context) error
}

// Pump is the single-flight timed actuator.
type Pump interface {
	Trigger(ctx context.Context) (models.TriggerOutcome, error)
	Status(ctx context.Context) models.PumpStatus
	Wait(ctx context.Context) error
}

// Sensors returns environmental readings.
type Sensors interface {
	Temperature(ctx context.Context) (float64, error)
	Humidity(ctx context.Context) (float64, error)
	SoilMoisture(ctx context.Context) (float64, error)
}

// EventLog exposes the append-only device log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

// Service aggregates all sub-services handed to the HTTP layer.
type Service struct {
	Connectivity
	Pump
	Sensors
	EventLog
	hardware.Restarter
}

// Settings are the tunables of the control core.
type Settings struct {
	Connectivity   ConnectivityConfig
	PumpDuration   time.Duration
	SensorCacheTTL time.Duration
}

// Dependencies are the collaborators wired in by main.
type Dependencies struct {
	Repos     *repository.Repository
	Radio     hardware.Radio
	PumpPin   hardware.Output
	Sensors   hardware.SensorGateway
	Restarter hardware.Restarter
	Announcer Announcer // optional
	Metrics   *metrics.Metrics
	Log       *logger.Logger
}

// NewService wires the repository and hardware layers into concrete services.
func NewService(set Settings, deps Dependencies) *Service {
	return &Service{
		Connectivity: NewConnectivityService(set.Connectivity, deps.Radio, deps.Repos.Credentials, deps.Repos.Events, deps.Log,
			WithAnnouncer(deps.Announcer), WithConnectivityMetrics(deps.Metrics)),
		Pump:      NewPumpService(deps.PumpPin, set.PumpDuration, deps.Repos.Events, deps.Metrics, deps.Log),
		Sensors:   NewSensorService(deps.Sensors, set.SensorCacheTTL, deps.Metrics, deps.Log),
		EventLog:  NewEventLogService(deps.Repos.Events),
		Restarter: deps.Restarter,
	}
}
