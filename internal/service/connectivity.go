package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"greenstack/internal/hardware"
	"greenstack/internal/logger"
	"greenstack/internal/metrics"
	"greenstack/internal/models"
	"greenstack/internal/repository"

	"github.com/cenkalti/backoff/v4"
)

// Connect timing. Boot and interactive attempts use different budgets.
const (
	BootConnectTimeout        = 20 * time.Second
	InteractiveConnectTimeout = 15 * time.Second
	ConnectPollInterval       = 500 * time.Millisecond
	RadioSettleDelay          = 1 * time.Second
)

const (
	DefaultHostname = "GreenStack"
	unassignedIP    = "0.0.0.0"
)

var errLinkDown = errors.New("station link down")

// ConnectivityConfig holds the compiled-in identities and timing of the radio.
type ConnectivityConfig struct {
	Hostname           string
	Defaults           models.NetworkCredentials // used when nothing is persisted
	AccessPoint        models.NetworkCredentials // identity broadcast in fallback mode
	BootTimeout        time.Duration
	InteractiveTimeout time.Duration
	PollInterval       time.Duration
	SettleDelay        time.Duration
}

func DefaultConnectivityConfig() ConnectivityConfig {
	return ConnectivityConfig{
		Hostname:           DefaultHostname,
		AccessPoint:        models.NetworkCredentials{SSID: "GreenStack-Setup", Password: "greenstack"},
		BootTimeout:        BootConnectTimeout,
		InteractiveTimeout: InteractiveConnectTimeout,
		PollInterval:       ConnectPollInterval,
		SettleDelay:        RadioSettleDelay,
	}
}

// Announcer is told when the device becomes reachable on a station network.
type Announcer interface {
	Announce(ip string)
	Withdraw()
}

type ConnectivityOption func(*ConnectivityService)

func WithAnnouncer(a Announcer) ConnectivityOption {
	return func(s *ConnectivityService) {
		if a != nil {
			s.announcer = a
		}
	}
}

func WithConnectivityMetrics(m *metrics.Metrics) ConnectivityOption {
	return func(s *ConnectivityService) { s.metrics = m }
}

type noopAnnouncer struct{}

func (noopAnnouncer) Announce(string) {}
func (noopAnnouncer) Withdraw()       {}

// ConnectivityService is the only writer of the wireless mode.
// opMu serializes mode changes; mu guards the snapshot read by Status.
type ConnectivityService struct {
	cfg       ConnectivityConfig
	radio     hardware.Radio
	store     repository.CredentialRepo
	events    repository.EventRepo
	announcer Announcer
	metrics   *metrics.Metrics
	log       *logger.Logger
	sleep     func(time.Duration)

	opMu sync.Mutex

	mu      sync.RWMutex
	state   models.ConnectivityState
	ip      string
	current models.NetworkCredentials
}

func NewConnectivityService(cfg ConnectivityConfig, radio hardware.Radio, store repository.CredentialRepo,
	events repository.EventRepo, log *logger.Logger, opts ...ConnectivityOption) *ConnectivityService {
	def := DefaultConnectivityConfig()
	if cfg.Hostname == "" {
		cfg.Hostname = def.Hostname
	}
	if cfg.AccessPoint.SSID == "" {
		cfg.AccessPoint = def.AccessPoint
	}
	if cfg.BootTimeout <= 0 {
		cfg.BootTimeout = def.BootTimeout
	}
	if cfg.InteractiveTimeout <= 0 {
		cfg.InteractiveTimeout = def.InteractiveTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}

	s := &ConnectivityService{
		cfg:       cfg,
		radio:     radio,
		store:     store,
		events:    events,
		announcer: noopAnnouncer{},
		log:       log,
		sleep:     time.Sleep,
		state:     models.StateDisconnected,
		current:   cfg.Defaults,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.SetWifiState(s.state)
	return s
}

// Bootstrap loads credentials (falling back to the defaults), tries station
// mode with the boot timeout and falls back to access-point mode.
func (s *ConnectivityService) Bootstrap(ctx context.Context) models.ConnectivityState {
	ctx = context.WithoutCancel(ctx)
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.bootstrapLocked(ctx)
}

func (s *ConnectivityService) bootstrapLocked(ctx context.Context) models.ConnectivityState {
	creds := s.loadCredentials(ctx)
	s.setCurrent(creds)

	if _, err := s.connect(ctx, creds, s.cfg.BootTimeout); err != nil {
		s.log.Warnw("wifi_boot_connect_failed", "err", err, "ssid", creds.SSID)
		s.startAccessPointFallback(ctx)
	}
	return s.State()
}

// loadCredentials never fails: any store error yields the compiled-in defaults.
func (s *ConnectivityService) loadCredentials(ctx context.Context) models.NetworkCredentials {
	creds, err := s.store.Load(ctx)
	switch {
	case err == nil:
		s.log.Infow("wifi_credentials_loaded", "ssid", creds.SSID)
		return creds
	case errors.Is(err, repository.ErrNotFound):
		s.log.Infow("wifi_credentials_default", "reason", "no stored credentials")
	default:
		s.log.Warnw("wifi_credentials_default", "reason", "load failed", "err", err)
	}
	return s.cfg.Defaults
}

// connect starts a station association and polls the link until it is up or
// timeout elapses. Caller cancellation is ignored once the attempt has begun.
func (s *ConnectivityService) connect(ctx context.Context, creds models.NetworkCredentials, timeout time.Duration) (string, error) {
	if !creds.Valid() {
		return "", ErrInvalidCredentials
	}
	if s.State() == models.StateAccessPointActive {
		if err := s.radio.StopAccessPoint(); err != nil {
			s.log.Warnw("wifi_ap_stop_failed", "err", err)
		}
	}
	s.setState(models.StateConnecting, "")

	s.radio.SetHostname(s.cfg.Hostname)
	s.log.Infow("wifi_connecting", "ssid", creds.SSID, "timeout", timeout)
	if err := s.radio.BeginStation(creds.SSID, creds.Password); err != nil {
		s.log.Errorw("wifi_begin_failed", "err", err, "ssid", creds.SSID)
	}

	pollCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	poll := backoff.WithContext(backoff.NewConstantBackOff(s.cfg.PollInterval), pollCtx)
	err := backoff.Retry(func() error {
		if s.radio.LinkUp() {
			return nil
		}
		return errLinkDown
	}, poll)

	if err != nil && !s.radio.LinkUp() {
		s.metrics.ConnectAttempt(false)
		if derr := s.radio.Disconnect(); derr != nil {
			s.log.Warnw("wifi_disconnect_failed", "err", derr)
		}
		s.setState(models.StateDisconnected, "")
		s.log.Warnw("wifi_connect_failed", "ssid", creds.SSID, "timeout", timeout)
		recordEvent(ctx, s.events, s.log, models.EventWifiConnectFailed, "Connection to "+creds.SSID+" timed out",
			map[string]any{"ssid": creds.SSID, "timeout_sec": timeout.Seconds()})
		return "", ErrConnectTimeout
	}

	ip := s.radio.LocalIP()
	s.metrics.ConnectAttempt(true)
	s.setState(models.StateStationConnected, ip)
	s.log.Infow("wifi_connected", "ssid", creds.SSID, "ip", ip, "hostname", s.cfg.Hostname)
	recordEvent(ctx, s.events, s.log, models.EventWifiConnected, "Connected to "+creds.SSID,
		map[string]any{"ssid": creds.SSID, "ip": ip})
	return ip, nil
}

// startAccessPointFallback broadcasts the configured AP identity. It never fails.
func (s *ConnectivityService) startAccessPointFallback(ctx context.Context) string {
	ap := s.cfg.AccessPoint
	ip, err := s.radio.StartAccessPoint(ap.SSID, ap.Password)
	if err != nil {
		s.log.Errorw("wifi_ap_start_failed", "err", err, "ap_ssid", ap.SSID)
	}
	s.setState(models.StateAccessPointActive, ip)
	s.log.Infow("wifi_ap_started", "ap_ssid", ap.SSID, "ip", ip)
	recordEvent(ctx, s.events, s.log, models.EventAPStarted, "Access point "+ap.SSID+" started",
		map[string]any{"ap_ssid": ap.SSID, "ip": ip})
	return ip
}

// ToggleMode switches between access-point and station mode.
func (s *ConnectivityService) ToggleMode(ctx context.Context) (models.ToggleResult, error) {
	ctx = context.WithoutCancel(ctx)
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.State() == models.StateAccessPointActive {
		s.log.Infow("wifi_toggle", "from", models.StateAccessPointActive, "to", models.StateStationConnected)
		if err := s.radio.StopAccessPoint(); err != nil {
			s.log.Warnw("wifi_ap_stop_failed", "err", err)
		}
		s.setState(models.StateDisconnected, "")
		s.sleep(s.cfg.SettleDelay)

		ip, err := s.connect(ctx, s.CurrentCredentials(), s.cfg.InteractiveTimeout)
		if err != nil {
			apIP := s.startAccessPointFallback(ctx)
			return models.ToggleResult{State: models.StateAccessPointActive, IP: apIP, APSSID: s.cfg.AccessPoint.SSID},
				fmt.Errorf("switch to station mode: %w", err)
		}
		return models.ToggleResult{State: models.StateStationConnected, IP: ip}, nil
	}

	s.log.Infow("wifi_toggle", "from", s.State(), "to", models.StateAccessPointActive)
	if err := s.radio.Disconnect(); err != nil {
		s.log.Warnw("wifi_disconnect_failed", "err", err)
	}
	s.setState(models.StateDisconnected, "")
	s.sleep(s.cfg.SettleDelay)
	ip := s.startAccessPointFallback(ctx)
	return models.ToggleResult{State: models.StateAccessPointActive, IP: ip, APSSID: s.cfg.AccessPoint.SSID}, nil
}

// UpdateCredentials connects with new credentials and persists them on
// success. On failure the boot sequence runs again with the previously
// known-good credentials before the error is returned.
func (s *ConnectivityService) UpdateCredentials(ctx context.Context, creds models.NetworkCredentials) (models.ConnectResult, error) {
	if !creds.Valid() {
		return models.ConnectResult{}, ErrInvalidCredentials
	}
	ctx = context.WithoutCancel(ctx)
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.radio.Disconnect(); err != nil {
		s.log.Warnw("wifi_disconnect_failed", "err", err)
	}
	s.sleep(s.cfg.SettleDelay)

	ip, err := s.connect(ctx, creds, s.cfg.InteractiveTimeout)
	if err != nil {
		s.log.Warnw("wifi_update_failed", "err", err, "ssid", creds.SSID)
		s.bootstrapLocked(ctx)
		return models.ConnectResult{}, fmt.Errorf("connect to %q: %w", creds.SSID, err)
	}

	saved := true
	if err := s.store.Save(ctx, creds); err != nil {
		saved = false
		s.log.Errorw("wifi_credentials_save_failed", "err", err, "ssid", creds.SSID)
	} else {
		recordEvent(ctx, s.events, s.log, models.EventCredentialsSaved, "Credentials for "+creds.SSID+" saved",
			map[string]any{"ssid": creds.SSID})
	}
	s.setCurrent(creds)
	return models.ConnectResult{IP: ip, Saved: saved}, nil
}

// ResetCredentials deletes the persisted record and restores the defaults.
func (s *ConnectivityService) ResetCredentials(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.log.Errorw("wifi_credentials_clear_failed", "err", err)
		return err
	}
	s.setCurrent(s.cfg.Defaults)
	s.log.Infow("wifi_credentials_cleared")
	recordEvent(ctx, s.events, s.log, models.EventCredentialsCleared, "Credentials reset to defaults", nil)
	return nil
}

// Status is a pure read.
func (s *ConnectivityService) Status(_ context.Context) models.WifiStatus {
	s.mu.RLock()
	st, ip, cur := s.state, s.ip, s.current
	s.mu.RUnlock()

	ws := models.WifiStatus{
		State:      st,
		APMode:     st == models.StateAccessPointActive,
		IP:         ip,
		StoredSSID: cur.SSID,
	}
	if st == models.StateStationConnected && s.radio.LinkUp() {
		rssi := s.radio.RSSI()
		ws.Connected = true
		ws.SSID = s.radio.SSID()
		ws.RSSI = &rssi
	}
	if ws.APMode {
		ws.APSSID = s.cfg.AccessPoint.SSID
	}
	if ws.IP == "" {
		ws.IP = unassignedIP
	}
	return ws
}

func (s *ConnectivityService) State() models.ConnectivityState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *ConnectivityService) CurrentCredentials() models.NetworkCredentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *ConnectivityService) setCurrent(c models.NetworkCredentials) {
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
}

// setState is only called with opMu held, so announcer calls stay ordered.
func (s *ConnectivityService) setState(st models.ConnectivityState, ip string) {
	s.mu.Lock()
	s.state, s.ip = st, ip
	s.mu.Unlock()

	s.metrics.SetWifiState(st)
	if st == models.StateStationConnected {
		s.announcer.Announce(ip)
	} else {
		s.announcer.Withdraw()
	}
}
