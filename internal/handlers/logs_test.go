package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"greenstack/internal/models"
	"greenstack/internal/service"
)

func TestEventsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.Event{
		{EventID: "e1", OccurredAt: now, Type: models.EventPumpOn, Description: "Pump activated"},
		{EventID: "e2", OccurredAt: now.Add(5 * time.Second), Type: models.EventPumpOff, Description: "Pump deactivated"},
	}
	logs := &mockEventLog{resp: events}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events?from=notatime", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = httptest.NewRecorder()
	q := "/events?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(10*time.Second).Format(time.RFC3339) + "&type=pump_on"
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, q, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("events status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int            `json:"count"`
		Events []models.Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != "pump_on" {
		t.Fatalf("type should be passed through for the service to normalize, got %q", logs.lastType)
	}
	if !logs.lastFrom.Equal(now) {
		t.Fatalf("from = %v; want %v", logs.lastFrom, now)
	}
}

func TestEventsHandler_DateOnlyToCoversWholeDay(t *testing.T) {
	logs := &mockEventLog{}
	r := newTestRouter(&service.Service{EventLog: logs})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events?to=2025-08-31", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	want := time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(want) {
		t.Fatalf("to = %v; want %v", logs.lastTo, want)
	}
}

func TestEventsHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid range", service.ErrInvalidTimeRange, http.StatusBadRequest},
		{"storage failure", errors.New("db locked"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{EventLog: &mockEventLog{err: tc.err}})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
			if w.Code != tc.code {
				t.Fatalf("status=%d; want %d", w.Code, tc.code)
			}
		})
	}
}

func TestParseQueryTime(t *testing.T) {
	for _, in := range []string{"2025-08-27T15:04:05Z", "2025-08-27 15:04:05", "2025-08-27"} {
		if _, err := parseQueryTime(in); err != nil {
			t.Errorf("parseQueryTime(%q) error: %v", in, err)
		}
	}
	if _, err := parseQueryTime("27/08/2025"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}
