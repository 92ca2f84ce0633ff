package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"greenstack/internal/models"
	"greenstack/internal/repository"
	"greenstack/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeWifi(t *testing.T, w *httptest.ResponseRecorder) WifiResponse {
	t.Helper()
	var out WifiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRoutes_UnmatchedIs404PlainText(t *testing.T) {
	r := newTestRouter(&service.Service{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodPost, "/temperature"},
		{http.MethodGet, "/wifi/connect"},
	} {
		w := do(t, r, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, tc.path)
		assert.Equal(t, notFoundBody, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(&service.Service{}), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSensors_Readings(t *testing.T) {
	s := &service.Service{Sensors: &mockSensors{temp: 22.46, humidity: 51.34, soil: 2310}}
	r := newTestRouter(s)

	w := do(t, r, http.MethodGet, "/temperature", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"temp":22.5}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/humidity", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"humidity":51.3}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/soilmoisture", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"soilmoisture":2310,"level":"fairly moist"}`, w.Body.String())
}

func TestSensors_UnavailableIs503(t *testing.T) {
	s := &service.Service{Sensors: &mockSensors{err: service.ErrSensorUnavailable}}
	r := newTestRouter(s)

	for _, p := range []string{"/temperature", "/humidity", "/soilmoisture"} {
		w := do(t, r, http.MethodGet, p, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, p)
		assert.JSONEq(t, `{"error":"sensor unavailable","code":"SENSOR_UNAVAILABLE"}`, w.Body.String())
	}
}

func TestPumpOn_SecondTriggerIsNoop(t *testing.T) {
	pump := &mockPump{outcomes: []models.TriggerOutcome{models.TriggerStarted, models.TriggerAlreadyRunning}}
	r := newTestRouter(&service.Service{Pump: pump})

	first := do(t, r, http.MethodGet, "/pump_on", "")
	second := do(t, r, http.MethodGet, "/pump_on", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, pumpToggled, first.Body.String())
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, pumpAlreadyRunning, second.Body.String())
	assert.Equal(t, 2, pump.calls)
}

func TestPumpOn_ActuatorFailure(t *testing.T) {
	r := newTestRouter(&service.Service{Pump: &mockPump{err: service.ErrActuator}})

	w := do(t, r, http.MethodGet, "/pump_on", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPumpStatus(t *testing.T) {
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	r := newTestRouter(&service.Service{Pump: &mockPump{status: models.PumpStatus{LastWatering: &at, DurationSec: 5}}})

	w := do(t, r, http.MethodGet, "/pump/status", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"running":false,"last_watering":"2025-06-01T08:00:00Z","duration_sec":5}`, w.Body.String())
}

func TestWifiStatus(t *testing.T) {
	conn := &mockConnectivity{status: models.WifiStatus{
		State: models.StateAccessPointActive, APMode: true, APSSID: "GreenStack-Setup", IP: "192.168.4.1", StoredSSID: "factory",
	}}
	w := do(t, newTestRouter(&service.Service{Connectivity: conn}), http.MethodGet, "/wifi/status", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"ACCESS_POINT_ACTIVE","connected":false,"ap_mode":true,"ap_ssid":"GreenStack-Setup","ip":"192.168.4.1","stored_ssid":"factory"}`, w.Body.String())
}

func TestWifiConnect(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		mock     *mockConnectivity
		wantCode int
		want     WifiResponse
		calls    int
	}{
		{
			name:     "success",
			body:     `{"ssid":"home","password":"secret"}`,
			mock:     &mockConnectivity{updateRes: models.ConnectResult{IP: "192.168.1.77", Saved: true}},
			wantCode: http.StatusOK,
			want:     WifiResponse{Success: true, Message: msgConnected, IP: "192.168.1.77"},
			calls:    1,
		},
		{
			name:     "connected but not saved",
			body:     `{"ssid":"home","password":"secret"}`,
			mock:     &mockConnectivity{updateRes: models.ConnectResult{IP: "192.168.1.77"}},
			wantCode: http.StatusOK,
			want:     WifiResponse{Success: true, Message: msgConnectedNotSaved, IP: "192.168.1.77", Code: codeStorageUnavailable},
			calls:    1,
		},
		{
			name:     "timeout",
			body:     `{"ssid":"cafe","password":"nope"}`,
			mock:     &mockConnectivity{updateErr: service.ErrConnectTimeout},
			wantCode: http.StatusOK,
			want:     WifiResponse{Message: msgConnectFailed, Code: codeConnectTimeout},
			calls:    1,
		},
		{
			name:     "invalid json",
			body:     `{"ssid":`,
			mock:     &mockConnectivity{},
			wantCode: http.StatusBadRequest,
			want:     WifiResponse{Message: msgInvalidJSON, Code: codeParseError},
		},
		{
			name:     "missing ssid",
			body:     `{"password":"secret"}`,
			mock:     &mockConnectivity{},
			wantCode: http.StatusBadRequest,
			want:     WifiResponse{Message: msgSSIDRequired, Code: codeInvalidRequest},
		},
		{
			name:     "blank ssid rejected by service",
			body:     `{"ssid":"   "}`,
			mock:     &mockConnectivity{updateErr: service.ErrInvalidCredentials},
			wantCode: http.StatusBadRequest,
			want:     WifiResponse{Message: msgSSIDRequired, Code: codeInvalidRequest},
			calls:    1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Connectivity: tc.mock})

			w := do(t, r, http.MethodPost, "/wifi/connect", tc.body)

			require.Equal(t, tc.wantCode, w.Code, w.Body.String())
			assert.Equal(t, tc.want, decodeWifi(t, w))
			assert.Equal(t, tc.calls, tc.mock.updateCall)
		})
	}
}

func TestWifiConnect_PassesCredentials(t *testing.T) {
	conn := &mockConnectivity{updateRes: models.ConnectResult{Saved: true}}
	r := newTestRouter(&service.Service{Connectivity: conn})

	do(t, r, http.MethodPost, "/wifi/connect", `{"ssid":"home","password":"secret"}`)

	assert.Equal(t, models.NetworkCredentials{SSID: "home", Password: "secret"}, conn.lastCreds)
}

// scheduled captures the restart timer instead of sleeping.
type scheduled struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
}

func (s *scheduled) afterFunc(d time.Duration, fn func()) *time.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay, s.fn = d, fn
	return nil
}

func TestWifiReset_SchedulesRestart(t *testing.T) {
	conn := &mockConnectivity{}
	restarter := &mockRestarter{}
	h := NewHandler(&service.Service{Connectivity: conn, Restarter: restarter}, nil)
	sched := &scheduled{}
	h.afterFunc = sched.afterFunc
	r := h.InitRoutes()

	w := do(t, r, http.MethodPost, "/wifi/reset", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, WifiResponse{Success: true, Message: msgResetDone}, decodeWifi(t, w))
	assert.Equal(t, 1, conn.resetCalls)
	assert.Equal(t, DefaultRestartDelay, sched.delay)
	require.NotNil(t, sched.fn)
	assert.Zero(t, restarter.count(), "restart must wait for the delay")
	sched.fn()
	assert.Equal(t, 1, restarter.count())
}

func TestWifiReset_StorageFailure(t *testing.T) {
	conn := &mockConnectivity{resetErr: repository.ErrStorageUnavailable}
	restarter := &mockRestarter{}
	h := NewHandler(&service.Service{Connectivity: conn, Restarter: restarter}, nil)
	sched := &scheduled{}
	h.afterFunc = sched.afterFunc

	w := do(t, h.InitRoutes(), http.MethodPost, "/wifi/reset", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, WifiResponse{Message: msgResetFailed, Code: codeStorageUnavailable}, decodeWifi(t, w))
	assert.Nil(t, sched.fn)
}

func TestWifiToggleAP(t *testing.T) {
	cases := []struct {
		name string
		mock *mockConnectivity
		want WifiResponse
	}{
		{
			name: "to station",
			mock: &mockConnectivity{toggleRes: models.ToggleResult{State: models.StateStationConnected, IP: "192.168.1.77"}},
			want: WifiResponse{Success: true, Message: msgSwitchedToWifi, IP: "192.168.1.77"},
		},
		{
			name: "to access point",
			mock: &mockConnectivity{toggleRes: models.ToggleResult{State: models.StateAccessPointActive, IP: "192.168.4.1", APSSID: "GreenStack-Setup"}},
			want: WifiResponse{Success: true, Message: msgSwitchedToAP, IP: "192.168.4.1", APSSID: "GreenStack-Setup"},
		},
		{
			name: "station failed",
			mock: &mockConnectivity{
				toggleRes: models.ToggleResult{State: models.StateAccessPointActive, IP: "192.168.4.1", APSSID: "GreenStack-Setup"},
				toggleErr: errors.Join(errors.New("switch to station mode"), service.ErrConnectTimeout),
			},
			want: WifiResponse{Message: msgStayedInAP, IP: "192.168.4.1", APSSID: "GreenStack-Setup", Code: codeConnectTimeout},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, newTestRouter(&service.Service{Connectivity: tc.mock}), http.MethodPost, "/wifi/toggle_ap", "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.want, decodeWifi(t, w))
		})
	}
}

func TestErrorCode(t *testing.T) {
	cases := map[error]string{
		service.ErrConnectTimeout:             codeConnectTimeout,
		service.ErrInvalidCredentials:         codeInvalidRequest,
		service.ErrSensorUnavailable:          codeSensorUnavailable,
		repository.ErrParse:                   codeParseError,
		repository.ErrStorageUnavailable:      codeStorageUnavailable,
		errors.New("something else entirely"): "",
	}
	for err, want := range cases {
		assert.Equal(t, want, errorCode(err), err.Error())
	}
	assert.Equal(t, "", errorCode(nil))
}

func TestSwaggerIndexServed(t *testing.T) {
	w := do(t, newTestRouter(&service.Service{}), http.MethodGet, "/swagger/index.html", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("swagger")))
}
