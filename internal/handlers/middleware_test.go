package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"greenstack/internal/metrics"
	"greenstack/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_RejectsBurstOverflow(t *testing.T) {
	r := newTestRouter(&service.Service{}, WithRateLimit(1, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_IsPerClient(t *testing.T) {
	r := newTestRouter(&service.Service{}, WithRateLimit(1, 1))

	for _, addr := range []string{"10.0.0.1:1000", "10.0.0.2:1000"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, addr)
	}
}

func TestRateLimiter_DisabledByDefault(t *testing.T) {
	r := newTestRouter(&service.Service{})
	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestIPRateLimiter_ReusesBucket(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	assert.Same(t, l.Limiter("a"), l.Limiter("a"))
	assert.NotSame(t, l.Limiter("a"), l.Limiter("b"))
}

func TestRequestLogger_RecordsRouteTemplate(t *testing.T) {
	m := metrics.New()
	r := newTestRouter(&service.Service{}, WithMetrics(m))

	for _, p := range []string{"/health", "/nope"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", unmatchedRoute, "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "greenstack_http_requests_total"))
}
