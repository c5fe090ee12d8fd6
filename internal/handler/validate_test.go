package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotGuard_Go/internal/auth"
	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/ratelimit"
)

type mockSpinService struct {
	mock.Mock
}

func (m *mockSpinService) ValidateSpin(ctx context.Context, uid string, body []byte) (*domain.ValidateSpinResult, error) {
	args := m.Called(ctx, uid, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidateSpinResult), args.Error(1)
}

type mockPurchaseService struct {
	mock.Mock
}

func (m *mockPurchaseService) VerifyPurchase(ctx context.Context, uid string, body []byte) (*domain.VerifyPurchaseResult, error) {
	args := m.Called(ctx, uid, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerifyPurchaseResult), args.Error(1)
}

func authedRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/spin/validate", strings.NewReader(body))
	return req.WithContext(auth.WithUserID(req.Context(), "user-1"))
}

func TestHandleValidateSpin(t *testing.T) {
	spinSvc := new(mockSpinService)
	h := NewValidationHandler(spinSvc, new(mockPurchaseService))
	body := `{"payload":{"payout":10},"signature":"ab","nonce":"n","timestamp":1}`

	spinSvc.On("ValidateSpin", mock.Anything, "user-1", []byte(body)).
		Return(&domain.ValidateSpinResult{Valid: true, Payout: 10}, nil)

	w := httptest.NewRecorder()
	h.HandleValidateSpin(w, authedRequest(body))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentTypeJSON, w.Header().Get(HeaderContentType))
	assert.JSONEq(t, `{"valid":true,"payout":10,"jackpotWin":0}`, w.Body.String())
	spinSvc.AssertExpectations(t)
}

func TestHandleValidateSpin_SuspiciousIsOK(t *testing.T) {
	spinSvc := new(mockSpinService)
	h := NewValidationHandler(spinSvc, new(mockPurchaseService))
	spinSvc.On("ValidateSpin", mock.Anything, "user-1", mock.Anything).
		Return(&domain.ValidateSpinResult{Valid: false, Payout: 20000}, nil)

	w := httptest.NewRecorder()
	h.HandleValidateSpin(w, authedRequest(`{}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":false,"payout":20000,"jackpotWin":0}`, w.Body.String())
}

func TestHandleValidateSpin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, domain.KindUnauthenticated, ErrMsgUnauthenticated},
		{"rate limited", ratelimit.ErrLimitExceeded{Action: domain.ActionSpin, RetryAfter: 1500 * time.Millisecond}, http.StatusTooManyRequests, domain.KindResourceExhausted, ErrMsgTooManyRequests},
		{"invalid input", domain.InvalidInputf("reels: bad"), http.StatusBadRequest, domain.KindInvalidArgument, ErrMsgInvalidRequest},
		{"bad signature", fmt.Errorf("%w: mismatch", domain.ErrSignatureInvalid), http.StatusForbidden, domain.KindPermissionDenied, ErrMsgSignatureRejected},
		{"internal", errors.New("pq: connection reset"), http.StatusInternalServerError, domain.KindInternal, ErrMsgGenericServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spinSvc := new(mockSpinService)
			h := NewValidationHandler(spinSvc, new(mockPurchaseService))
			spinSvc.On("ValidateSpin", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			h.HandleValidateSpin(w, authedRequest(`{}`))

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Error)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.NotContains(t, w.Body.String(), "pq:", "internal details never leak")
		})
	}
}

func TestHandleValidateSpin_RetryAfter(t *testing.T) {
	spinSvc := new(mockSpinService)
	h := NewValidationHandler(spinSvc, new(mockPurchaseService))
	spinSvc.On("ValidateSpin", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, ratelimit.ErrLimitExceeded{Action: domain.ActionSpin, RetryAfter: 1500 * time.Millisecond})

	w := httptest.NewRecorder()
	h.HandleValidateSpin(w, authedRequest(`{}`))

	assert.Equal(t, "2", w.Header().Get(HeaderRetryAfter))
}

func TestHandleValidateSpin_NoIdentityPassesEmptyUser(t *testing.T) {
	spinSvc := new(mockSpinService)
	h := NewValidationHandler(spinSvc, new(mockPurchaseService))
	spinSvc.On("ValidateSpin", mock.Anything, "", mock.Anything).Return(nil, domain.ErrUnauthenticated)

	w := httptest.NewRecorder()
	h.HandleValidateSpin(w, httptest.NewRequest(http.MethodPost, "/api/v1/spin/validate", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	spinSvc.AssertExpectations(t)
}

func TestHandleValidateSpin_BodyTooLarge(t *testing.T) {
	h := NewValidationHandler(new(mockSpinService), new(mockPurchaseService))

	req := authedRequest(strings.Repeat("x", 64))
	w := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(w, req.Body, 16)
	h.HandleValidateSpin(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestHandleVerifyPurchase(t *testing.T) {
	purchaseSvc := new(mockPurchaseService)
	h := NewValidationHandler(new(mockSpinService), purchaseSvc)
	purchaseSvc.On("VerifyPurchase", mock.Anything, "user-1", mock.Anything).
		Return(&domain.VerifyPurchaseResult{Verified: true}, nil).Once()
	purchaseSvc.On("VerifyPurchase", mock.Anything, "user-1", mock.Anything).
		Return(nil, domain.InvalidInputf("productId is required")).Once()

	w := httptest.NewRecorder()
	h.HandleVerifyPurchase(w, authedRequest(`{"payload":{"productId":"coins_500"}}`))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"verified":true}`, w.Body.String())

	w = httptest.NewRecorder()
	h.HandleVerifyPurchase(w, authedRequest(`{"payload":{}}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondJSON_ReusesBuffers(t *testing.T) {
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		respondJSON(w, http.StatusOK, map[string]int{"n": i})
		assert.Equal(t, fmt.Sprintf("{\"n\":%d}\n", i), w.Body.String())
	}
	assert.Zero(t, encodeBuffers.Get().(*bytes.Buffer).Len(), "pooled buffers come back empty")
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, map[string]interface{}{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Header().Get(HeaderContentType), ContentTypeJSON)
}
