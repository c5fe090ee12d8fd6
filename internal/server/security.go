package server

import (
	"context"
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
)

// proxySet resolves the client address of a request. X-Forwarded-For is only
// honoured when the direct peer is one of the configured proxies.
type proxySet map[string]struct{}

func newProxySet(trusted []string) proxySet {
	set := make(proxySet, len(trusted))
	for _, p := range trusted {
		set[strings.TrimSpace(p)] = struct{}{}
	}
	return set
}

func (p proxySet) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if _, ok := p[peer]; !ok {
		return peer
	}

	// the rightmost hop is the one our proxy saw connect
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

// APIKeyMiddleware requires the operator API key. It guards the admin
// routes; players authenticate with bearer tokens instead. An empty apiKey
// rejects every request.
func APIKeyMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	proxies := newProxySet(trustedProxies)
	want := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAPIKey)
			if len(want) > 0 && subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}

			ip := proxies.clientIP(r)
			detector.RecordFailedAuth(r.Context(), ip)
			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				LogFieldIP, ip,
				LogFieldPath, r.URL.Path,
				LogFieldHasKey, got != "")

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

type ipActivity struct {
	requests   int
	failedAuth int
}

// SuspiciousActivityDetector counts requests and failed logins per IP over a
// fixed DetectorWindow. It is a coarse flood guard in front of the per-user
// rate limits.
type SuspiciousActivityDetector struct {
	mu          sync.Mutex
	clients     map[string]*ipActivity
	windowStart time.Time
	maxRequests int
	now         func() time.Time
}

// NewSuspiciousActivityDetector allows maxRequests per IP in each window.
// A non-positive maxRequests selects DetectorMaxRequests.
func NewSuspiciousActivityDetector(maxRequests int) *SuspiciousActivityDetector {
	if maxRequests <= 0 {
		maxRequests = DetectorMaxRequests
	}
	return &SuspiciousActivityDetector{
		clients:     make(map[string]*ipActivity),
		windowStart: time.Now(),
		maxRequests: maxRequests,
		now:         time.Now,
	}
}

// activity returns the record for ip in the current window, starting a new
// window when the old one has lapsed. Caller holds mu.
func (d *SuspiciousActivityDetector) activity(ip string) *ipActivity {
	if now := d.now(); now.Sub(d.windowStart) > DetectorWindow {
		d.clients = make(map[string]*ipActivity)
		d.windowStart = now
	}
	a, ok := d.clients[ip]
	if !ok {
		a = &ipActivity{}
		d.clients[ip] = a
	}
	return a
}

// RecordFailedAuth counts a rejected API key from ip
func (d *SuspiciousActivityDetector) RecordFailedAuth(ctx context.Context, ip string) {
	d.mu.Lock()
	a := d.activity(ip)
	a.failedAuth++
	failures := a.failedAuth
	d.mu.Unlock()

	if failures >= DetectorFailedAuthAlert {
		logger.FromContext(ctx).Warn(SecurityAlertFailedAuth, LogFieldIP, ip, LogFieldCount, failures)
	}
}

// RecordRequest counts a request from ip and reports whether it is still
// within budget
func (d *SuspiciousActivityDetector) RecordRequest(ctx context.Context, ip string) bool {
	d.mu.Lock()
	a := d.activity(ip)
	a.requests++
	requests := a.requests
	d.mu.Unlock()

	if requests <= d.maxRequests {
		return true
	}
	metrics.SuspiciousIPRequests.Inc()
	if requests%DetectorLogEvery == 0 {
		logger.FromContext(ctx).Warn(SecurityAlertHighRate, LogFieldIP, ip, LogFieldCount, requests)
	}
	return false
}

// FloodGuardMiddleware refuses IPs that exceed the detector's request budget
func FloodGuardMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	proxies := newProxySet(trustedProxies)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(r.Context(), proxies.clientIP(r)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

var securityHeaders = [...]struct{ name, value string }{
	{HeaderContentTypeOptions, HeaderValueNoSniff},
	{HeaderFrameOptions, HeaderValueSameOrigin},
	{HeaderXSSProtection, HeaderValueXSSBlock},
	{HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin},
	// validation answers are per-request and must never be replayed from a cache
	{HeaderCacheControl, HeaderValueNoStore},
}

// SecurityHeadersMiddleware sets the fixed response hardening headers
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, sh := range securityHeaders {
				h.Set(sh.name, sh.value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
