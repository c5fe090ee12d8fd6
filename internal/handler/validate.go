package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/osse101/SlotGuard_Go/internal/auth"
	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/purchase"
	"github.com/osse101/SlotGuard_Go/internal/spin"
)

// ValidationHandler serves the spin and purchase validation endpoints. The
// request body is passed to the services untouched so the signature is
// checked against the exact bytes the client signed.
type ValidationHandler struct {
	spin     spin.Service
	purchase purchase.Service
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(spinSvc spin.Service, purchaseSvc purchase.Service) *ValidationHandler {
	return &ValidationHandler{spin: spinSvc, purchase: purchaseSvc}
}

// HandleValidateSpin checks a signed spin result.
// A suspicious spin is a 200 with valid=false and a clamped payout.
// @Summary Validate a spin
// @Description Check a locally resolved spin. The payload is a SpinRequest; suspicious spins come back valid=false with a clamped payout.
// @Tags validation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.SignedEnvelope true "Signed SpinRequest"
// @Success 200 {object} domain.ValidateSpinResult "Authoritative payout"
// @Failure 400 {object} ErrorResponse "Malformed or expired request"
// @Failure 401 {object} ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} ErrorResponse "Signature rejected"
// @Failure 413 {object} ErrorResponse "Body too large"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/spin/validate [post]
func (h *ValidationHandler) HandleValidateSpin(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	result, err := h.spin.ValidateSpin(r.Context(), auth.UserID(r.Context()), body)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleVerifyPurchase checks a signed purchase request
// @Summary Verify a purchase
// @Description Check a purchase request. The payload is a PurchaseRequest.
// @Tags validation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.SignedEnvelope true "Signed PurchaseRequest"
// @Success 200 {object} domain.VerifyPurchaseResult "Verification result"
// @Failure 400 {object} ErrorResponse "Malformed request or product id"
// @Failure 401 {object} ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} ErrorResponse "Signature rejected"
// @Failure 413 {object} ErrorResponse "Body too large"
// @Failure 429 {object} ErrorResponse "Rate limited"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/purchase/verify [post]
func (h *ValidationHandler) HandleVerifyPurchase(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	result, err := h.purchase.VerifyPurchase(r.Context(), auth.UserID(r.Context()), body)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// readBody reads the whole request body. If ok is false the response has
// already been written.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err == nil {
		return body, true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, domain.KindInvalidArgument, ErrMsgBodyTooLarge)
		return nil, false
	}
	logger.FromContext(r.Context()).Warn(LogMsgReadBodyFailed, LogFieldError, err)
	respondError(w, http.StatusBadRequest, domain.KindInvalidArgument, ErrMsgReadBodyFailed)
	return nil, false
}
