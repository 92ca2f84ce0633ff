package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"greenstack/internal/models"
)

var (
	// ErrNotFound means no credential record has been persisted yet.
	ErrNotFound = errors.New("credentials not found")
	// ErrParse means a persisted record exists but cannot be decoded.
	ErrParse = errors.New("malformed persisted record")
	// ErrStorageUnavailable wraps failures of the underlying database.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CredentialRepo is the durable record of network credentials.
type CredentialRepo interface {
	Load(ctx context.Context) (models.NetworkCredentials, error)
	Save(ctx context.Context, c models.NetworkCredentials) error
	Clear(ctx context.Context) error
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error)
}

type Repository struct {
	Credentials CredentialRepo
	Events      EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Credentials: NewCredentialSQLite(db),
		Events:      NewEventSQLite(db),
	}
}
