package service

import (
	"context"
	"time"

	"greenstack/internal/logger"
	"greenstack/internal/models"
	"greenstack/internal/repository"

	"github.com/google/uuid"
)

// recordEvent appends to the device log. Failures are logged and dropped:
// the log must never fail a pump or wifi operation.
func recordEvent(ctx context.Context, repo repository.EventRepo, log *logger.Logger, typ, desc string, meta map[string]any) {
	if repo == nil {
		return
	}
	ev := models.Event{
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now().UTC(),
		Type:        typ,
		Description: desc,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := repo.Append(context.WithoutCancel(ctx), ev); err != nil {
		log.Warnw("event_append_failed", "err", err, "type", typ)
	}
}
