package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oseiserwaa/kitchen/pkg/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimit(t *testing.T) {
	limiter := ratelimiter.New()
	defer limiter.Stop()
	limiter.SetPolicy(ratelimiter.NamespaceForm, 2, time.Minute)

	handler := RateLimit(limiter, ratelimiter.NamespaceForm, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	post := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/messages", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, post("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusOK, post("10.0.0.1:5001").Code)

	w := post("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// other clients keep their own budget
	assert.Equal(t, http.StatusOK, post("10.0.0.2:5000").Code)
}

// Rotating X-Forwarded-For from a direct connection must not buy a fresh budget.
func TestRateLimit_IgnoresSpoofedForwardedFor(t *testing.T) {
	limiter := ratelimiter.New()
	defer limiter.Stop()
	limiter.SetPolicy(ratelimiter.NamespaceForm, 2, time.Minute)

	handler := RateLimit(limiter, ratelimiter.NamespaceForm, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for _, fwd := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/messages", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", fwd)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.5:4321"
	assert.Equal(t, "192.168.1.5", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "192.168.1.5", ClientIP(req))
}

func TestProxyTrust_ClientIP(t *testing.T) {
	proxies, err := NewProxyTrust([]string{"10.0.0.0/8", " 127.0.0.1 ", ""})
	require.NoError(t, err)

	tests := []struct {
		name   string
		remote string
		fwd    string
		want   string
	}{
		{"direct client ignores header", "203.0.113.7:4000", "198.51.100.1", "203.0.113.7"},
		{"trusted proxy without header", "10.1.2.3:80", "", "10.1.2.3"},
		{"trusted proxy forwards client", "10.1.2.3:80", "198.51.100.1", "198.51.100.1"},
		{"spoofed left hop is skipped", "127.0.0.1:80", "1.2.3.4, 198.51.100.1, 10.0.0.5", "198.51.100.1"},
		{"all hops trusted", "10.1.2.3:80", "10.0.0.9, 10.0.0.5", "10.1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.fwd != "" {
				req.Header.Set("X-Forwarded-For", tt.fwd)
			}
			assert.Equal(t, tt.want, proxies.ClientIP(req))
		})
	}

	var none *ProxyTrust
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:80"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	assert.Equal(t, "10.1.2.3", none.ClientIP(req))
}

func TestNewProxyTrust_Invalid(t *testing.T) {
	_, err := NewProxyTrust([]string{"not-an-ip"})
	assert.ErrorContains(t, err, `invalid trusted proxy "not-an-ip"`)

	_, err = NewProxyTrust([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}
