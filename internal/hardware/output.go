package hardware

import (
	"sync"
	"time"
)

// Output is a single binary actuator line, such as the pump relay.
type Output interface {
	Set(high bool) error
	High() bool
}

// Transition is one recorded level change of a SimOutput.
type Transition struct {
	High bool
	At   time.Time
}

// SimOutput records its level and every transition.
type SimOutput struct {
	Name string

	mu          sync.Mutex
	high        bool
	transitions []Transition
	onChange    func(name string, high bool)
}

func NewSimOutput(name string, onChange func(name string, high bool)) *SimOutput {
	return &SimOutput{Name: name, onChange: onChange}
}

func (o *SimOutput) Set(high bool) error {
	o.mu.Lock()
	changed := o.high != high
	o.high = high
	if changed {
		o.transitions = append(o.transitions, Transition{High: high, At: time.Now()})
	}
	cb := o.onChange
	o.mu.Unlock()

	if changed && cb != nil {
		cb(o.Name, high)
	}
	return nil
}

func (o *SimOutput) High() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.high
}

// Transitions returns a copy of the recorded level changes.
func (o *SimOutput) Transitions() []Transition {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Transition, len(o.transitions))
	copy(out, o.transitions)
	return out
}
