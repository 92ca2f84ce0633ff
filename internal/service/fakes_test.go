package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"greenstack/internal/models"
	"greenstack/internal/repository"
)

// memCredStore is an in-memory repository.CredentialRepo.
type memCredStore struct {
	mu       sync.Mutex
	creds    *models.NetworkCredentials
	loadErr  error
	saveErr  error
	clearErr error
	saves    int
	clears   int
}

func (m *memCredStore) Load(context.Context) (models.NetworkCredentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return models.NetworkCredentials{}, m.loadErr
	}
	if m.creds == nil {
		return models.NetworkCredentials{}, repository.ErrNotFound
	}
	return *m.creds, nil
}

func (m *memCredStore) Save(_ context.Context, c models.NetworkCredentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.creds = &c
	return nil
}

func (m *memCredStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.clearErr != nil {
		return m.clearErr
	}
	m.creds = nil
	return nil
}

func (m *memCredStore) stored() *models.NetworkCredentials {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds
}

// memEventRepo records appended events.
type memEventRepo struct {
	mu        sync.Mutex
	events    []models.Event
	appendErr error
}

func (m *memEventRepo) Append(_ context.Context, e models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memEventRepo) List(context.Context, time.Time, time.Time, string) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Event(nil), m.events...), nil
}

func (m *memEventRepo) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Type)
	}
	return out
}

// failingOutput refuses every level change.
type failingOutput struct{}

func (failingOutput) Set(bool) error { return errors.New("gpio write failed") }
func (failingOutput) High() bool     { return false }

// recordingAnnouncer counts mDNS announce/withdraw calls.
type recordingAnnouncer struct {
	mu        sync.Mutex
	announced []string
	withdrawn int
}

func (r *recordingAnnouncer) Announce(ip string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.announced = append(r.announced, ip)
}

func (r *recordingAnnouncer) Withdraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.withdrawn++
}
