package hardware

import (
	"fmt"
	"os"
	"sync"
	"syscall"
)

// Restarter restarts the device process.
type Restarter interface {
	Restart()
}

// ProcessRestarter requests a restart through a channel. The owner of the
// process (main) shuts down gracefully, then calls Exec.
type ProcessRestarter struct {
	once      sync.Once
	requested chan struct{}
}

func NewProcessRestarter() *ProcessRestarter {
	return &ProcessRestarter{requested: make(chan struct{})}
}

func (p *ProcessRestarter) Restart() {
	p.once.Do(func() { close(p.requested) })
}

// Requested is closed once a restart has been asked for.
func (p *ProcessRestarter) Requested() <-chan struct{} {
	return p.requested
}

// Exec replaces the current process image with a fresh copy of the binary.
func (p *ProcessRestarter) Exec() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return syscall.Exec(exe, os.Args, os.Environ())
}
