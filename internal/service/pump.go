package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"greenstack/internal/hardware"
	"greenstack/internal/logger"
	"greenstack/internal/metrics"
	"greenstack/internal/models"
	"greenstack/internal/repository"
)

const DefaultPumpDuration = 5 * time.Second

// PumpService drives the pump output for a fixed duration per trigger.
// At most one run is active; off-actions are scheduled once per run.
type PumpService struct {
	out      hardware.Output
	duration time.Duration
	events   repository.EventRepo
	metrics  *metrics.Metrics
	log      *logger.Logger

	now       func() time.Time
	afterFunc func(time.Duration, func()) *time.Timer

	mu           sync.Mutex
	run          models.PumpRun
	lastWatering time.Time
	done         chan struct{} // closed when the active run finishes
}

func NewPumpService(out hardware.Output, duration time.Duration, events repository.EventRepo,
	m *metrics.Metrics, log *logger.Logger) *PumpService {
	if duration <= 0 {
		duration = DefaultPumpDuration
	}
	done := make(chan struct{})
	close(done)
	return &PumpService{
		out:       out,
		duration:  duration,
		events:    events,
		metrics:   m,
		log:       log,
		now:       time.Now,
		afterFunc: time.AfterFunc,
		done:      done,
	}
}

// Trigger starts a run unless one is already active.
func (s *PumpService) Trigger(ctx context.Context) (models.TriggerOutcome, error) {
	s.mu.Lock()
	if s.run.Active {
		started := s.run.ActivatedAt
		s.mu.Unlock()
		s.metrics.PumpTriggerRejected()
		s.log.Infow("pump_trigger_ignored", "reason", "already running", "activated_at", started)
		return models.TriggerAlreadyRunning, nil
	}

	if err := s.out.Set(true); err != nil {
		s.mu.Unlock()
		s.log.Errorw("pump_output_failed", "err", err, "level", "high")
		return "", fmt.Errorf("%w: %w", ErrActuator, err)
	}

	at := s.now().UTC()
	s.run = models.PumpRun{Active: true, ActivatedAt: at}
	s.lastWatering = at
	done := make(chan struct{})
	s.done = done
	s.afterFunc(s.duration, func() { s.finish(ctx, done) })
	s.mu.Unlock()

	s.metrics.PumpStarted()
	s.log.Infow("pump_on", "duration", s.duration)
	recordEvent(ctx, s.events, s.log, models.EventPumpOn, "Pump activated",
		map[string]any{"duration_sec": s.duration.Seconds()})
	return models.TriggerStarted, nil
}

func (s *PumpService) finish(ctx context.Context, done chan struct{}) {
	s.mu.Lock()
	if err := s.out.Set(false); err != nil {
		s.log.Errorw("pump_output_failed", "err", err, "level", "low")
	}
	s.run = models.PumpRun{}
	close(done)
	s.mu.Unlock()

	s.metrics.PumpStopped()
	s.log.Infow("pump_off")
	recordEvent(ctx, s.events, s.log, models.EventPumpOff, "Pump deactivated", nil)
}

func (s *PumpService) Status(_ context.Context) models.PumpStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.PumpStatus{Running: s.run.Active, DurationSec: s.duration.Seconds()}
	if s.run.Active {
		at := s.run.ActivatedAt
		st.ActivatedAt = &at
	}
	if !s.lastWatering.IsZero() {
		lw := s.lastWatering
		st.LastWatering = &lw
	}
	return st
}

// Wait blocks until no run is active or ctx is done.
func (s *PumpService) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
