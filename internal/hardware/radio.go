package hardware

import (
	"errors"
	"sync"
	"time"
)

// Radio controls the single wireless interface of the device.
// Station and access-point mode are mutually exclusive.
type Radio interface {
	SetHostname(name string)
	// BeginStation starts associating with a network. It does not wait for the link.
	BeginStation(ssid, password string) error
	LinkUp() bool
	LocalIP() string
	SSID() string
	RSSI() int
	Disconnect() error
	StartAccessPoint(ssid, password string) (string, error)
	StopAccessPoint() error
}

var ErrRadioBusy = errors.New("radio is in access point mode")

const (
	DefaultSimStationIP = "192.168.1.77"
	DefaultSimAPIP      = "192.168.4.1"
	defaultSimRSSI      = -58
)

// SimRadio associates with any network listed in Networks whose password
// matches, after AssociateDelay.
type SimRadio struct {
	Networks       map[string]string
	AssociateDelay time.Duration
	StationIP      string
	APIP           string

	mu       sync.Mutex
	hostname string
	ssid     string
	linkAt   time.Time // zero unless association will succeed
	apSSID   string
	apOn     bool
	now      func() time.Time
}

func NewSimRadio(networks map[string]string, associateDelay time.Duration) *SimRadio {
	return &SimRadio{
		Networks:       networks,
		AssociateDelay: associateDelay,
		StationIP:      DefaultSimStationIP,
		APIP:           DefaultSimAPIP,
		now:            time.Now,
	}
}

func (r *SimRadio) SetHostname(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hostname = name
}

func (r *SimRadio) Hostname() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostname
}

func (r *SimRadio) BeginStation(ssid, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.apOn {
		return ErrRadioBusy
	}
	r.ssid = ssid
	r.linkAt = time.Time{}
	if want, ok := r.Networks[ssid]; ok && want == password {
		r.linkAt = r.clock().Add(r.AssociateDelay)
	}
	return nil
}

func (r *SimRadio) LinkUp() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.linkUpLocked()
}

func (r *SimRadio) linkUpLocked() bool {
	return !r.apOn && !r.linkAt.IsZero() && !r.clock().Before(r.linkAt)
}

func (r *SimRadio) LocalIP() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.apOn:
		return r.APIP
	case r.linkUpLocked():
		return r.StationIP
	default:
		return "0.0.0.0"
	}
}

func (r *SimRadio) SSID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.linkUpLocked() {
		return ""
	}
	return r.ssid
}

func (r *SimRadio) RSSI() int {
	if !r.LinkUp() {
		return 0
	}
	return defaultSimRSSI
}

func (r *SimRadio) Disconnect() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ssid = ""
	r.linkAt = time.Time{}
	return nil
}

func (r *SimRadio) StartAccessPoint(ssid, _ string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ssid = ""
	r.linkAt = time.Time{}
	r.apSSID = ssid
	r.apOn = true
	return r.APIP, nil
}

func (r *SimRadio) StopAccessPoint() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apOn = false
	r.apSSID = ""
	return nil
}

// APActive reports whether the simulated access point is broadcasting.
func (r *SimRadio) APActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apOn
}

func (r *SimRadio) clock() time.Time {
	if r.now == nil {
		return time.Now()
	}
	return r.now()
}
