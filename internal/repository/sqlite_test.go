package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"greenstack/internal/models"
	"greenstack/internal/repository"
	"greenstack/internal/repository/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRepo(t *testing.T) *repository.Repository {
	t.Helper()
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "greenstack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return repository.NewRepository(conn)
}

func TestCredentials_RoundTrip(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	_, err := repo.Credentials.Load(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)

	for _, c := range []models.NetworkCredentials{
		{SSID: "home", Password: "secret"},
		{SSID: "open-net"},
		{SSID: `quo"te\s ünïcode`, Password: "p@ss word"},
	} {
		require.NoError(t, repo.Credentials.Save(ctx, c))
		got, err := repo.Credentials.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	require.NoError(t, repo.Credentials.Clear(ctx))
	_, err = repo.Credentials.Load(ctx)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	// idempotent
	require.NoError(t, repo.Credentials.Clear(ctx))
}

func TestEvents_AppendAndFilter(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, typ := range []string{models.EventPumpOn, models.EventPumpOff, models.EventPumpOn} {
		require.NoError(t, repo.Events.Append(ctx, models.Event{
			OccurredAt:  base.Add(time.Duration(i) * time.Minute),
			Type:        typ,
			Description: typ,
			Metadata:    map[string]any{"i": i},
		}))
	}

	all, err := repo.Events.List(ctx, time.Time{}, time.Time{}, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].OccurredAt.Before(all[2].OccurredAt))

	ons, err := repo.Events.List(ctx, time.Time{}, time.Time{}, "pump_on")
	require.NoError(t, err)
	assert.Len(t, ons, 2)

	window, err := repo.Events.List(ctx, base.Add(time.Minute), base.Add(2*time.Minute), "")
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, models.EventPumpOff, window[0].Type)
}
