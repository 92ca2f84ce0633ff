package service

import (
	"context"
	"math"
	"time"

	"greenstack/internal/hardware"
	"greenstack/internal/logger"
	"greenstack/internal/metrics"

	"github.com/patrickmn/go-cache"
)

const (
	sensorTemperature  = "temperature"
	sensorHumidity     = "humidity"
	sensorSoilMoisture = "soil_moisture"
)

// SensorService reads the sensor gateway. Readings are cached for ttl so a
// polling dashboard does not hammer slow sensors; ttl <= 0 disables caching.
type SensorService struct {
	gw      hardware.SensorGateway
	cache   *cache.Cache
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewSensorService(gw hardware.SensorGateway, ttl time.Duration, m *metrics.Metrics, log *logger.Logger) *SensorService {
	s := &SensorService{gw: gw, metrics: m, log: log}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *SensorService) Temperature(ctx context.Context) (float64, error) {
	return s.read(ctx, sensorTemperature, s.gw.Temperature)
}

func (s *SensorService) Humidity(ctx context.Context) (float64, error) {
	return s.read(ctx, sensorHumidity, s.gw.Humidity)
}

func (s *SensorService) SoilMoisture(ctx context.Context) (float64, error) {
	return s.read(ctx, sensorSoilMoisture, s.gw.SoilMoisture)
}

func (s *SensorService) read(ctx context.Context, name string, fn func(context.Context) (float64, error)) (float64, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(name); ok {
			return v.(float64), nil
		}
	}

	v, err := fn(ctx)
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = ErrSensorUnavailable
	}
	if err != nil {
		s.metrics.SensorError(name)
		s.log.Warnw("sensor_read_failed", "sensor", name, "err", err)
		return 0, ErrSensorUnavailable
	}

	if s.cache != nil {
		s.cache.SetDefault(name, v)
	}
	return v, nil
}
