package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const unmatchedRoute = "unmatched"

// IPRateLimiter keeps one token bucket per client address.
type IPRateLimiter struct {
	mu  sync.RWMutex
	ips map[string]*rate.Limiter
	r   rate.Limit
	b   int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	if b < 1 {
		b = 1
	}
	return &IPRateLimiter{ips: make(map[string]*rate.Limiter), r: r, b: b}
}

// Limiter returns the bucket for ip, creating it on first use.
func (i *IPRateLimiter) Limiter(ip string) *rate.Limiter {
	i.mu.RLock()
	l, ok := i.ips[ip]
	i.mu.RUnlock()
	if ok {
		return l
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if l, ok = i.ips[ip]; ok {
		return l
	}
	l = rate.NewLimiter(i.r, i.b)
	i.ips[ip] = l
	return l
}

// RateLimiter rejects clients that exceed r requests per second with 429.
func RateLimiter(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewIPRateLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
			return
		}
		c.Next()
	}
}

// requestLogger logs every request and records it in the HTTP metrics.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		h.metrics.ObserveHTTP(c.Request.Method, route, status, elapsed.Seconds())

		kv := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", elapsed,
			"client_ip", c.ClientIP(),
		}
		if status >= http.StatusInternalServerError {
			h.log.Warnw("http_request", kv...)
			return
		}
		h.log.Debugw("http_request", kv...)
	}
}
