package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"greenstack/internal/models"
)

// CredentialSQLite keeps the wifi record as one JSON value in the settings table.
type CredentialSQLite struct {
	db *sql.DB
}

func NewCredentialSQLite(db *sql.DB) *CredentialSQLite {
	return &CredentialSQLite{db: db}
}

const (
	wifiConfigKey = "wifi_config"

	upsertSettingSQL = `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value=excluded.value,
			updated_at=excluded.updated_at
	`

	selectSettingSQL = `SELECT value FROM settings WHERE key=?`

	deleteSettingSQL = `DELETE FROM settings WHERE key=?`
)

// wifiRecord mirrors the on-disk document {"ssid":..,"password":..}.
type wifiRecord struct {
	SSID     *string `json:"ssid"`
	Password string  `json:"password"`
}

func encodeCredentials(c models.NetworkCredentials) (string, error) {
	b, err := json.Marshal(wifiRecord{SSID: &c.SSID, Password: c.Password})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCredentials(s string) (models.NetworkCredentials, error) {
	var rec wifiRecord
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return models.NetworkCredentials{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if rec.SSID == nil {
		return models.NetworkCredentials{}, fmt.Errorf("%w: missing ssid", ErrParse)
	}
	return models.NetworkCredentials{SSID: *rec.SSID, Password: rec.Password}, nil
}

// Load returns the persisted credentials, ErrNotFound when none exist,
// or ErrParse when the stored value is not a valid record.
func (r *CredentialSQLite) Load(ctx context.Context) (models.NetworkCredentials, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectSettingSQL, wifiConfigKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NetworkCredentials{}, ErrNotFound
		}
		return models.NetworkCredentials{}, fmt.Errorf("%w: load credentials: %w", ErrStorageUnavailable, err)
	}
	return decodeCredentials(value)
}

// Save replaces the record in a single statement, so readers never see a partial write.
func (r *CredentialSQLite) Save(ctx context.Context, c models.NetworkCredentials) error {
	value, err := encodeCredentials(c)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, upsertSettingSQL, wifiConfigKey, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: save credentials: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes the record. Clearing an absent record is not an error.
func (r *CredentialSQLite) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, deleteSettingSQL, wifiConfigKey); err != nil {
		return fmt.Errorf("%w: clear credentials: %w", ErrStorageUnavailable, err)
	}
	return nil
}
