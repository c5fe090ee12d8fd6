package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/signing"
)

const (
	testSigningKey = "client-test-key"
	testToken      = "token-abc"
)

type reply struct {
	status int
	body   string
}

// fakeServer authenticates every request like the real one and answers
// from a script; the last reply repeats
type fakeServer struct {
	t        *testing.T
	verifier *signing.Verifier

	mu       sync.Mutex
	replies  []reply
	calls    int
	payloads []json.RawMessage
}

func newFakeServer(t *testing.T, replies ...reply) (*fakeServer, *httptest.Server) {
	t.Helper()
	f := &fakeServer{t: t, verifier: signing.NewVerifier(testSigningKey, 0), replies: replies}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	assert.Equal(f.t, BearerPrefix+testToken, r.Header.Get(HeaderAuthorization))
	body, err := io.ReadAll(r.Body)
	if !assert.NoError(f.t, err) {
		return
	}

	// every attempt carries a fresh nonce, so Open never sees a replay
	payload, err := f.verifier.Open(body)
	if !assert.NoError(f.t, err) {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	f.payloads = append(f.payloads, payload)

	rep := f.replies[len(f.replies)-1]
	if f.calls < len(f.replies) {
		rep = f.replies[f.calls]
	}
	f.calls++

	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(rep.status)
	_, _ = w.Write([]byte(rep.body))
}

func (f *fakeServer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL:    baseURL,
		Token:      testToken,
		SigningKey: testSigningKey,
		Retries:    1,
		RetryDelay: time.Millisecond,
		Timeout:    2 * time.Second,
	}
}

func newTestBackend(baseURL string, notify Notifier) *Backend {
	return NewBackend(testConfig(baseURL), signing.NewSigner(testSigningKey), notify)
}

func spinRequest() domain.SpinRequest {
	return domain.SpinRequest{
		MachineID: "classic",
		Reels:     [3]domain.Symbol{"cherry", "cherry", "cherry"},
		Payout:    100,
		BetAmount: 10,
		IsJackpot: false,
		Timestamp: 1700000000000,
	}
}

func TestValidateSpin_Server(t *testing.T) {
	fake, srv := newFakeServer(t, reply{http.StatusOK, `{"valid":false,"payout":20000,"jackpotWin":0}`})
	b := newTestBackend(srv.URL, nil)

	outcome, err := b.ValidateSpin(context.Background(), spinRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceServer, outcome.Source)
	assert.False(t, outcome.Valid)
	assert.Equal(t, int64(20000), outcome.Payout)

	require.Len(t, fake.payloads, 1)
	var sent domain.SpinRequest
	require.NoError(t, json.Unmarshal(fake.payloads[0], &sent))
	assert.Equal(t, spinRequest(), sent)
}

func TestValidateSpin_RetriesServerError(t *testing.T) {
	fake, srv := newFakeServer(t,
		reply{http.StatusInternalServerError, `{"error":"internal","message":"oops"}`},
		reply{http.StatusOK, `{"valid":true,"payout":100,"jackpotWin":0}`},
	)
	b := newTestBackend(srv.URL, nil)

	outcome, err := b.ValidateSpin(context.Background(), spinRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceServer, outcome.Source)
	assert.Equal(t, 2, fake.callCount())
}

func TestValidateSpin_FallbackAfterRetries(t *testing.T) {
	fake, srv := newFakeServer(t, reply{http.StatusBadGateway, ``})
	b := newTestBackend(srv.URL, nil)

	outcome, err := b.ValidateSpin(context.Background(), spinRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalFallback, outcome.Source)
	assert.True(t, outcome.Valid)
	assert.Equal(t, int64(100), outcome.Payout, "local payout is trusted")
	assert.Equal(t, 2, fake.callCount(), "one retry")
}

func TestValidateSpin_TerminalErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"resource-exhausted","message":"slow down"}`, domain.ErrRateLimited},
		{"unauthenticated", http.StatusUnauthorized, `{"error":"unauthenticated"}`, domain.ErrUnauthenticated},
		{"invalid", http.StatusBadRequest, `{"error":"invalid-argument"}`, domain.ErrInvalidInput},
		{"signature", http.StatusForbidden, `{"error":"permission-denied"}`, domain.ErrSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, srv := newFakeServer(t, reply{tt.status, tt.body})
			b := newTestBackend(srv.URL, nil)

			outcome, err := b.ValidateSpin(context.Background(), spinRequest())
			require.Error(t, err)
			assert.Nil(t, outcome, "no fallback on a refusal")
			assert.True(t, errors.Is(err, tt.want))
			assert.True(t, IsTerminal(err))

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, 1, fake.callCount(), "refusals are not retried")
		})
	}
}

func TestValidateSpin_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	outcome, err := newTestBackend(url, nil).ValidateSpin(context.Background(), spinRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalFallback, outcome.Source)
}

func TestValidateSpin_Offline(t *testing.T) {
	req := spinRequest()
	req.JackpotWin = 5000

	outcome, err := newTestBackend("", nil).ValidateSpin(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceLocalFallback, outcome.Source)
	assert.Equal(t, int64(5000), outcome.JackpotWin)
}

func TestValidateSpin_Cancelled(t *testing.T) {
	_, srv := newFakeServer(t, reply{http.StatusServiceUnavailable, ``})
	b := newTestBackend(srv.URL, nil)
	b.retryDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	outcome, err := b.ValidateSpin(ctx, spinRequest())
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, context.Canceled)
}

type notifications struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notifications) notify(_ context.Context, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func TestVerifyPurchase(t *testing.T) {
	var n notifications
	_, srv := newFakeServer(t, reply{http.StatusOK, `{"verified":true}`})

	outcome, err := newTestBackend(srv.URL, n.notify).VerifyPurchase(context.Background(),
		domain.PurchaseRequest{ProductID: "coins_1000", Platform: "ios"})
	require.NoError(t, err)
	assert.True(t, outcome.Verified)
	assert.Equal(t, domain.SourceServer, outcome.Source)
	assert.Empty(t, n.msgs)
}

func TestVerifyPurchase_FailureNotifies(t *testing.T) {
	var n notifications
	_, srv := newFakeServer(t, reply{http.StatusInternalServerError, ``})

	outcome, err := newTestBackend(srv.URL, n.notify).VerifyPurchase(context.Background(),
		domain.PurchaseRequest{ProductID: "coins_1000"})
	require.NoError(t, err)
	assert.True(t, outcome.Verified)
	assert.Equal(t, domain.SourceLocalFallback, outcome.Source)
	assert.Equal(t, []string{NotifyPurchaseFailed}, n.msgs)
}

func TestVerifyPurchase_RefusalNotifies(t *testing.T) {
	var n notifications
	_, srv := newFakeServer(t, reply{http.StatusBadRequest, `{"error":"invalid-argument"}`})

	outcome, err := newTestBackend(srv.URL, n.notify).VerifyPurchase(context.Background(),
		domain.PurchaseRequest{ProductID: "x"})
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, n.msgs, 1)
}

func TestStatusError(t *testing.T) {
	se := &StatusError{StatusCode: http.StatusNotFound}
	assert.False(t, se.Terminal(), "unknown kinds are treated as an unavailable backend")
	assert.ErrorIs(t, se, domain.ErrBackendUnavailable)
	assert.Equal(t, "server returned status 404", se.Error())
}
