package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestFrom(remoteAddr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/fraud-events", nil)
	req.RemoteAddr = remoteAddr
	return req
}

func TestAPIKeyMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		provided   string
		want       int
	}{
		{"matching key", "secret-key", "secret-key", http.StatusOK},
		{"wrong key", "secret-key", "wrong-key", http.StatusUnauthorized},
		{"prefix of key", "secret-key", "secret", http.StatusUnauthorized},
		{"missing key", "secret-key", "", http.StatusUnauthorized},
		{"nothing configured", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := APIKeyMiddleware(tt.configured, nil, NewSuspiciousActivityDetector(0))(okHandler())

			req := requestFrom("203.0.113.9:4000")
			if tt.provided != "" {
				req.Header.Set(HeaderAPIKey, tt.provided)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAPIKeyMiddleware_CountsFailuresPerClient(t *testing.T) {
	detector := NewSuspiciousActivityDetector(0)
	h := APIKeyMiddleware("secret", []string{"10.0.0.1"}, detector)(okHandler())

	for i := 0; i < 3; i++ {
		req := requestFrom("10.0.0.1:5555")
		req.Header.Set(HeaderForwardedFor, "198.51.100.7")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	detector.mu.Lock()
	defer detector.mu.Unlock()
	assert.Equal(t, 3, detector.clients["198.51.100.7"].failedAuth)
	assert.NotContains(t, detector.clients, "10.0.0.1", "the proxy itself is not blamed")
}

func TestFloodGuardMiddleware(t *testing.T) {
	const budget = 5
	h := FloodGuardMiddleware(nil, NewSuspiciousActivityDetector(budget))(okHandler())

	for i := 0; i < budget; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("192.168.1.100:1234"))
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.168.1.100:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("192.168.1.101:1234"))
	assert.Equal(t, http.StatusOK, rec.Code, "other clients are unaffected")
}

func TestNewSuspiciousActivityDetector_DefaultBudget(t *testing.T) {
	assert.Equal(t, DetectorMaxRequests, NewSuspiciousActivityDetector(-1).maxRequests)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	d := NewSuspiciousActivityDetector(2)
	d.now = func() time.Time { return now }
	d.windowStart = now

	assert.True(t, d.RecordRequest(ctx, "1.2.3.4"))
	assert.True(t, d.RecordRequest(ctx, "1.2.3.4"))
	assert.False(t, d.RecordRequest(ctx, "1.2.3.4"))
	d.RecordFailedAuth(ctx, "1.2.3.4")

	now = now.Add(DetectorWindow + time.Second)
	assert.True(t, d.RecordRequest(ctx, "1.2.3.4"))

	d.mu.Lock()
	defer d.mu.Unlock()
	assert.Equal(t, ipActivity{requests: 1}, *d.clients["1.2.3.4"])
}

func TestProxySet_ClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"direct", "203.0.113.5:4000", "", nil, "203.0.113.5"},
		{"forwarded from untrusted peer is ignored", "203.0.113.5:4000", "1.1.1.1", nil, "203.0.113.5"},
		{"trusted proxy", "10.0.0.1:4000", "1.1.1.1, 2.2.2.2", []string{"10.0.0.1"}, "2.2.2.2"},
		{"configured with spaces", "10.0.0.1:4000", "2.2.2.2", []string{" 10.0.0.1 "}, "2.2.2.2"},
		{"trusted proxy without header", "10.0.0.1:4000", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"unparsable remote addr", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom(tt.remoteAddr)
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, newProxySet(tt.trusted).clientIP(req))
		})
	}
}
