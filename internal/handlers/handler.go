package handlers

import (
	"net/http"
	"time"

	"greenstack/internal/logger"
	"greenstack/internal/metrics"
	"greenstack/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// DefaultRestartDelay lets the reset response reach the client before the
// process goes down.
const DefaultRestartDelay = 1 * time.Second

const notFoundBody = "Not found :("

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  *metrics.Metrics

	rateLimit    rate.Limit
	rateBurst    int
	restartDelay time.Duration
	afterFunc    func(time.Duration, func()) *time.Timer
}

type Option func(*Handler)

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithRateLimit enables a per-client token bucket. perSec <= 0 disables it.
func WithRateLimit(perSec float64, burst int) Option {
	return func(h *Handler) {
		h.rateLimit = rate.Limit(perSec)
		h.rateBurst = burst
	}
}

func WithRestartDelay(d time.Duration) Option {
	return func(h *Handler) {
		if d >= 0 {
			h.restartDelay = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{
		services:     services,
		log:          log,
		restartDelay: DefaultRestartDelay,
		afterFunc:    time.AfterFunc,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// route maps one method and path to a handler.
type route struct {
	method  string
	path    string
	handler gin.HandlerFunc
}

func (h *Handler) routes() []route {
	return []route{
		// device surface served to the bundled web page
		{http.MethodGet, "/temperature", h.getTemperature},
		{http.MethodGet, "/humidity", h.getHumidity},
		{http.MethodGet, "/soilmoisture", h.getSoilMoisture},
		{http.MethodGet, "/pump_on", h.pumpOn},
		{http.MethodGet, "/wifi/status", h.wifiStatus},
		{http.MethodPost, "/wifi/connect", h.wifiConnect},
		{http.MethodPost, "/wifi/reset", h.wifiReset},
		{http.MethodPost, "/wifi/toggle_ap", h.wifiToggleAP},

		{http.MethodGet, "/pump/status", h.pumpStatus},
		{http.MethodGet, "/events", h.getEvents},
		{http.MethodGet, "/ws", h.wsConnect},
		{http.MethodGet, "/health", h.health},
	}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())
	if h.rateLimit > 0 {
		router.Use(RateLimiter(h.rateLimit, h.rateBurst))
	}

	for _, rt := range h.routes() {
		router.Handle(rt.method, rt.path, rt.handler)
	}
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, notFoundBody)
	})
	return router
}
