// Package client is the game client's side of the validation protocol: it
// signs locally resolved spins and purchases, submits them to the server and
// settles the player's balance on the answer.
//
// When the server cannot be reached the client trusts its own outcome. This
// keeps offline play working at the cost of strict enforcement.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/config"
	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/signing"
)

// Notifier shows a dismissable message to the player
type Notifier func(ctx context.Context, message string)

// StatusError is a non-200 answer from the server
type StatusError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %d", ErrMsgUnexpectedStatus, e.StatusCode)
	}
	return fmt.Sprintf("%s %d: %s", ErrMsgUnexpectedStatus, e.StatusCode, e.Message)
}

// Unwrap maps the wire kind back onto the domain error
func (e *StatusError) Unwrap() error {
	switch e.Kind {
	case domain.KindUnauthenticated:
		return domain.ErrUnauthenticated
	case domain.KindResourceExhausted:
		return domain.ErrRateLimited
	case domain.KindInvalidArgument:
		return domain.ErrInvalidInput
	case domain.KindPermissionDenied:
		return domain.ErrSignatureInvalid
	default:
		return domain.ErrBackendUnavailable
	}
}

// Terminal reports whether retrying or falling back would be wrong: the
// server saw the request and refused it
func (e *StatusError) Terminal() bool {
	return !errors.Is(e, domain.ErrBackendUnavailable)
}

// IsTerminal reports whether err is a refusal the caller must handle
func IsTerminal(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Terminal()
}

// Backend talks to the validation server
type Backend struct {
	BaseURL    string
	Token      string
	Client     *http.Client
	signer     *signing.Signer
	retries    int
	retryDelay time.Duration
	notify     Notifier
}

// NewBackend creates a backend from client configuration. An empty BaseURL
// means offline: every call takes the local fallback.
func NewBackend(cfg *config.ClientConfig, signer *signing.Signer, notify Notifier) *Backend {
	retries := cfg.Retries
	if retries < 0 {
		retries = 0
	}
	if notify == nil {
		notify = func(context.Context, string) {}
	}
	return &Backend{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Token:   cfg.Token,
		Client: &http.Client{
			Timeout: cfg.Timeout,
		},
		signer:     signer,
		retries:    retries,
		retryDelay: cfg.RetryDelay,
		notify:     notify,
	}
}

// ValidateSpin asks the server to confirm a locally resolved spin. If the
// server is unreachable the request's own payout is trusted and Source is
// domain.SourceLocalFallback. Refusals are returned as errors.
func (b *Backend) ValidateSpin(ctx context.Context, req domain.SpinRequest) (*domain.ValidationOutcome, error) {
	fallback := &domain.ValidationOutcome{
		ValidateSpinResult: domain.ValidateSpinResult{
			Valid:      true,
			Payout:     req.Payout,
			JackpotWin: req.JackpotWin,
		},
		Source: domain.SourceLocalFallback,
	}
	if b.BaseURL == "" {
		return fallback, nil
	}

	var result domain.ValidateSpinResult
	err := b.call(ctx, PathValidateSpin, req, &result)
	if err == nil {
		return &domain.ValidationOutcome{ValidateSpinResult: result, Source: domain.SourceServer}, nil
	}

	log := logger.FromContext(ctx)
	if IsTerminal(err) || ctx.Err() != nil {
		log.Warn(LogMsgTerminalError, LogFieldPath, PathValidateSpin, LogFieldError, err)
		return nil, err
	}
	log.Warn(LogMsgLocalFallback, LogFieldPath, PathValidateSpin, LogFieldError, err)
	return fallback, nil
}

// VerifyPurchase asks the server to verify a purchase. Any failure notifies
// the player; an unreachable server yields a locally trusted verification.
func (b *Backend) VerifyPurchase(ctx context.Context, req domain.PurchaseRequest) (*domain.PurchaseOutcome, error) {
	fallback := &domain.PurchaseOutcome{
		VerifyPurchaseResult: domain.VerifyPurchaseResult{Verified: true},
		Source:               domain.SourceLocalFallback,
	}
	if b.BaseURL == "" {
		return fallback, nil
	}

	var result domain.VerifyPurchaseResult
	err := b.call(ctx, PathVerifyPurchase, req, &result)
	if err == nil {
		return &domain.PurchaseOutcome{VerifyPurchaseResult: result, Source: domain.SourceServer}, nil
	}

	b.notify(ctx, NotifyPurchaseFailed)

	log := logger.FromContext(ctx)
	if IsTerminal(err) || ctx.Err() != nil {
		log.Warn(LogMsgTerminalError, LogFieldPath, PathVerifyPurchase, LogFieldError, err)
		return nil, err
	}
	log.Warn(LogMsgLocalFallback, LogFieldPath, PathVerifyPurchase, LogFieldError, err)
	return fallback, nil
}

// call signs payload and posts it, retrying transport failures and 5xx
// answers up to b.retries times. Each attempt is signed afresh so a retried
// request is not rejected as a replay.
func (b *Backend) call(ctx context.Context, path string, payload interface{}, out interface{}) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= b.retries; attempt++ {
		if attempt > 0 {
			delay := b.retryDelay * time.Duration(attempt)
			log.Info(LogMsgRetrying, LogFieldAttempt, attempt, LogFieldPath, path, LogFieldDelay, delay)
			if err := wait(ctx, delay); err != nil {
				return err
			}
		}

		env, err := b.signer.Sign(payload)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgMarshalRequest, err)
		}

		err = b.post(ctx, path, env, out)
		if err == nil {
			return nil
		}
		if IsTerminal(err) || ctx.Err() != nil {
			return err
		}
		lastErr = err
		log.Warn(LogMsgRequestFailed, LogFieldError, err, LogFieldAttempt, attempt)
	}

	return fmt.Errorf("%s: %w", ErrMsgRetriesExhausted, lastErr)
}

func (b *Backend) post(ctx context.Context, path string, env *domain.SignedEnvelope, out interface{}) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMarshalRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCreateRequest, err)
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	if b.Token != "" {
		req.Header.Set(HeaderAuthorization, BearerPrefix+b.Token)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		se := &StatusError{StatusCode: resp.StatusCode}
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&errResp); err == nil {
			se.Kind = errResp.Error
			se.Message = errResp.Message
		}
		// 5xx is never a refusal, whatever the body says
		if resp.StatusCode >= http.StatusInternalServerError {
			se.Kind = domain.KindInternal
		}
		return se
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrBackendUnavailable, ErrMsgDecodeResponse, err)
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
