package handlers

import (
	"context"
	"sync"
	"time"

	"greenstack/internal/models"
	"greenstack/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockConnectivity struct {
	status models.WifiStatus

	updateRes  models.ConnectResult
	updateErr  error
	lastCreds  models.NetworkCredentials
	updateCall int

	toggleRes models.ToggleResult
	toggleErr error

	resetErr   error
	resetCalls int
}

func (m *mockConnectivity) Bootstrap(context.Context) models.ConnectivityState {
	return m.status.State
}

func (m *mockConnectivity) Status(context.Context) models.WifiStatus { return m.status }

func (m *mockConnectivity) UpdateCredentials(_ context.Context, c models.NetworkCredentials) (models.ConnectResult, error) {
	m.updateCall++
	m.lastCreds = c
	return m.updateRes, m.updateErr
}

func (m *mockConnectivity) ToggleMode(context.Context) (models.ToggleResult, error) {
	return m.toggleRes, m.toggleErr
}

func (m *mockConnectivity) ResetCredentials(context.Context) error {
	m.resetCalls++
	return m.resetErr
}

type mockPump struct {
	mu       sync.Mutex
	outcomes []models.TriggerOutcome
	err      error
	calls    int
	status   models.PumpStatus
}

func (m *mockPump) Trigger(context.Context) (models.TriggerOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if len(m.outcomes) == 0 {
		return models.TriggerStarted, nil
	}
	o := m.outcomes[0]
	m.outcomes = m.outcomes[1:]
	return o, nil
}

func (m *mockPump) Status(context.Context) models.PumpStatus { return m.status }

func (m *mockPump) Wait(context.Context) error { return nil }

type mockSensors struct {
	temp, humidity, soil float64
	err                  error
}

func (m *mockSensors) Temperature(context.Context) (float64, error)  { return m.temp, m.err }
func (m *mockSensors) Humidity(context.Context) (float64, error)     { return m.humidity, m.err }
func (m *mockSensors) SoilMoisture(context.Context) (float64, error) { return m.soil, m.err }

type mockEventLog struct {
	resp     []models.Event
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.Event, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockRestarter struct {
	mu    sync.Mutex
	calls int
}

func (m *mockRestarter) Restart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
}

func (m *mockRestarter) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
