// Package discovery advertises the device's HTTP API on the local network
// over mDNS/DNS-SD while it is joined to a network in station mode.
package discovery

import (
	"sync"

	"greenstack/internal/logger"

	"github.com/grandcat/zeroconf"
)

const (
	DefaultService = "_http._tcp"
	DefaultDomain  = "local."
)

type registration interface {
	Shutdown()
}

type registerFunc func(instance, service, domain string, port int, txt []string) (registration, error)

func zeroconfRegister(instance, service, domain string, port int, txt []string) (registration, error) {
	return zeroconf.Register(instance, service, domain, port, txt, nil)
}

// Advertiser keeps at most one live mDNS registration.
type Advertiser struct {
	instance string
	service  string
	domain   string
	port     int
	log      *logger.Logger
	register registerFunc

	mu  sync.Mutex
	reg registration
	ip  string
}

func NewAdvertiser(instance, service string, port int, log *logger.Logger) *Advertiser {
	if service == "" {
		service = DefaultService
	}
	return &Advertiser{
		instance: instance,
		service:  service,
		domain:   DefaultDomain,
		port:     port,
		log:      log,
		register: zeroconfRegister,
	}
}

// Announce registers the service for ip. A repeated call with the same ip is a no-op.
func (a *Advertiser) Announce(ip string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.reg != nil && a.ip == ip {
		return
	}
	a.shutdownLocked()

	txt := []string{"ip=" + ip, "path=/"}
	reg, err := a.register(a.instance, a.service, a.domain, a.port, txt)
	if err != nil {
		a.log.Warnw("mdns_register_failed", "err", err, "instance", a.instance)
		return
	}
	a.reg, a.ip = reg, ip
	a.log.Infow("mdns_registered", "instance", a.instance, "service", a.service, "port", a.port, "ip", ip)
}

// Withdraw removes the registration, if any.
func (a *Advertiser) Withdraw() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.reg != nil {
		a.log.Infow("mdns_withdrawn", "instance", a.instance)
	}
	a.shutdownLocked()
}

// Active reports whether a registration is live.
func (a *Advertiser) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reg != nil
}

func (a *Advertiser) shutdownLocked() {
	if a.reg == nil {
		return
	}
	a.reg.Shutdown()
	a.reg, a.ip = nil, ""
}
