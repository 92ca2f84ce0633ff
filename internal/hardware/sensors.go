package hardware

import (
	"context"
	"math/rand/v2"
	"sync"
)

// SensorGateway returns environmental readings on demand.
// A reading may be NaN when the sensor did not answer.
type SensorGateway interface {
	Temperature(ctx context.Context) (float64, error)
	Humidity(ctx context.Context) (float64, error)
	SoilMoisture(ctx context.Context) (float64, error) // raw 12-bit ADC value
}

// Simulation bounds for SimSensors.
const (
	SimTempMinC     = 12.0
	SimTempMaxC     = 32.0
	SimHumidityMin  = 30.0
	SimHumidityMax  = 85.0
	SimSoilRawMin   = 1200.0
	SimSoilRawMax   = 3800.0
	simWalkFraction = 0.02
)

// SimSensors performs a bounded random walk on each reading.
type SimSensors struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	temp     float64
	humidity float64
	soil     float64
}

func NewSimSensors(seed uint64) *SimSensors {
	return &SimSensors{
		rnd:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		temp:     21.5,
		humidity: 55,
		soil:     2300,
	}
}

func (s *SimSensors) Temperature(ctx context.Context) (float64, error) {
	return s.step(ctx, &s.temp, SimTempMinC, SimTempMaxC)
}

func (s *SimSensors) Humidity(ctx context.Context) (float64, error) {
	return s.step(ctx, &s.humidity, SimHumidityMin, SimHumidityMax)
}

func (s *SimSensors) SoilMoisture(ctx context.Context) (float64, error) {
	return s.step(ctx, &s.soil, SimSoilRawMin, SimSoilRawMax)
}

func (s *SimSensors) step(ctx context.Context, v *float64, lo, hi float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delta := (s.rnd.Float64()*2 - 1) * (hi - lo) * simWalkFraction
	*v = clamp(*v+delta, lo, hi)
	return *v, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
