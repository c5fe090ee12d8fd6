package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/ratelimit"
)

// ErrorResponse is the body of every failed request. Error is one of the
// domain wire kinds; Message is safe to show to a player.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// encodeBuffers holds scratch buffers for response encoding
var encodeBuffers = sync.Pool{
	New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, 512)) },
}

// respondJSON encodes payload before touching w, so an encoding failure can
// still become a 500 instead of a truncated body
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := encodeBuffers.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		encodeBuffers.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, LogFieldError, err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, LogFieldError, err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, kind, message string) {
	respondJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// respondServiceError maps a service error onto its HTTP status and a
// user-facing message. Internal failures are logged here; their details
// never reach the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.ErrorKind(err)
	status, message := statusForKind(kind)

	var limitErr ratelimit.ErrLimitExceeded
	if errors.As(err, &limitErr) {
		w.Header().Set(HeaderRetryAfter, strconv.Itoa(limitErr.RetryAfterSeconds()))
	}

	if kind == domain.KindInternal {
		logger.FromContext(r.Context()).Error(LogMsgServiceError, LogFieldError, err, LogFieldPath, r.URL.Path)
	}
	respondError(w, status, kind, message)
}

// statusForKind maps a wire error kind to an HTTP status and message
func statusForKind(kind string) (int, string) {
	switch kind {
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized, ErrMsgUnauthenticated
	case domain.KindResourceExhausted:
		return http.StatusTooManyRequests, ErrMsgTooManyRequests
	case domain.KindInvalidArgument:
		return http.StatusBadRequest, ErrMsgInvalidRequest
	case domain.KindPermissionDenied:
		return http.StatusForbidden, ErrMsgSignatureRejected
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
