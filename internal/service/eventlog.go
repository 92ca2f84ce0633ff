package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"greenstack/internal/models"
	"greenstack/internal/repository"
)

// EventLogService is the read side of the device log.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")

func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

func canonicalEventType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func normalizeFilter(f LogFilter) (LogFilter, error) {
	out := LogFilter{From: toUTC(f.From), To: toUTC(f.To), Type: canonicalEventType(f.Type)}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, ErrInvalidTimeRange
	}
	return out, nil
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.Event, error) {
	nf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, nf.From, nf.To, nf.Type)
}
