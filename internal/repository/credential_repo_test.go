package repository

import (
	"errors"
	"regexp"
	"testing"

	"greenstack/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCredentialSQLite_Load_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCredentialSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSettingSQL)).
		WithArgs(wifiConfigKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.Load(ctx(t))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCredentialSQLite_Load_Decodes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCredentialSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSettingSQL)).
		WithArgs(wifiConfigKey).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"ssid":"home","password":"secret"}`))

	got, err := repo.Load(ctx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := models.NetworkCredentials{SSID: "home", Password: "secret"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestCredentialSQLite_Load_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":     `{"ssid":`,
		"missing ssid": `{"password":"x"}`,
		"wrong type":   `{"ssid":42}`,
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewCredentialSQLite(db)
			mock.ExpectQuery(regexp.QuoteMeta(selectSettingSQL)).
				WithArgs(wifiConfigKey).
				WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(value))

			_, err := repo.Load(ctx(t))
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
		})
	}
}

func TestCredentialSQLite_Load_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCredentialSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSettingSQL)).
		WillReturnError(errors.New("no such table: settings"))

	_, err := repo.Load(ctx(t))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestCredentialSQLite_Save_UpsertsJSON(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCredentialSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settings (key, value, updated_at)")).
		WithArgs(wifiConfigKey, `{"ssid":"home","password":""}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(ctx(t), models.NetworkCredentials{SSID: "home"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestCredentialSQLite_Save_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCredentialSQLite(db)

	mock.ExpectExec("INSERT INTO settings").WillReturnError(errors.New("readonly"))

	err := repo.Save(ctx(t), models.NetworkCredentials{SSID: "home"})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestCredentialSQLite_Clear(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCredentialSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteSettingSQL)).
		WithArgs(wifiConfigKey).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Clear(ctx(t)); err != nil {
		t.Fatalf("Clear on empty store should succeed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
