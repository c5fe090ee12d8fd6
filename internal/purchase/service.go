// Package purchase verifies in-app purchase requests before currency is
// credited.
//
// The check is a placeholder for a real store receipt verification API: it
// only looks at the shape of the product identifier. A well-formed id proves
// nothing about whether the purchase happened, so nothing downstream should
// treat verified=true as more than "not obviously forged".
package purchase

import (
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/fraud"
	"github.com/osse101/SlotGuard_Go/internal/gate"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
)

// Config bounds purchase verification
type Config struct {
	RateLimit  int
	RateWindow time.Duration
}

// Service verifies purchase requests
type Service interface {
	VerifyPurchase(ctx context.Context, uid string, body []byte) (*domain.VerifyPurchaseResult, error)
}

type service struct {
	gate  *gate.Gate
	fraud fraud.Service
	cfg   Config
}

// NewService creates a purchase verification service. Zero fields in cfg
// take the production defaults.
func NewService(g *gate.Gate, fraudSvc fraud.Service, cfg Config) Service {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = domain.DefaultPurchaseRateLimit
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = domain.DefaultRateLimitWindow
	}
	return &service{gate: g, fraud: fraudSvc, cfg: cfg}
}

type request struct {
	ProductID *string `json:"productId"`
	Type      *string `json:"type"`
	Platform  *string `json:"platform"`
}

func (s *service) VerifyPurchase(ctx context.Context, uid string, body []byte) (*domain.VerifyPurchaseResult, error) {
	ctx, span := otel.Tracer(TracerName).Start(ctx, SpanVerifyPurchase)
	defer span.End()

	ctx = logger.WithUserID(ctx, uid)
	log := logger.FromContext(ctx)

	payload, err := s.gate.Admit(ctx, uid, gate.Policy{
		Action: domain.ActionPurchaseVerify,
		Limit:  s.cfg.RateLimit,
		Window: s.cfg.RateWindow,
	}, body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	req, err := parseRequest(payload)
	if err != nil {
		log.Info(LogMsgPurchaseRejected, LogFieldError, err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String(AttrPlatform, req.Platform))

	if !ValidProductID(req.ProductID) {
		log.Warn(LogMsgPurchaseAnomaly,
			LogFieldProductID, truncate(req.ProductID, domain.MaxProductIDLength),
			LogFieldPlatform, req.Platform,
			LogFieldType, req.Type)

		evt := domain.FraudEvent{
			UserID:       uid,
			Type:         domain.FraudPurchaseAnomaly,
			ProductID:    req.ProductID,
			Platform:     req.Platform,
			PurchaseType: req.Type,
		}
		if err := s.fraud.Record(ctx, evt); err != nil {
			span.RecordError(err)
			return nil, err
		}

		metrics.PurchasesVerified.WithLabelValues(metrics.ResultUnverified).Inc()
		span.SetAttributes(attribute.Bool(AttrVerified, false))
		return &domain.VerifyPurchaseResult{Verified: false}, nil
	}

	metrics.PurchasesVerified.WithLabelValues(metrics.ResultVerified).Inc()
	span.SetAttributes(attribute.Bool(AttrVerified, true))
	log.Info(LogMsgPurchaseVerified, LogFieldProductID, req.ProductID, LogFieldPlatform, req.Platform)
	return &domain.VerifyPurchaseResult{Verified: true}, nil
}

// parseRequest decodes payload. productId must be a non-empty string; type
// and platform fall back to UnknownValue.
func parseRequest(payload json.RawMessage) (*domain.PurchaseRequest, error) {
	var req request
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, domain.InvalidInputf("%s: %v", ErrMsgMalformedPurchase, err)
	}
	if req.ProductID == nil || *req.ProductID == "" {
		return nil, domain.InvalidInputf(ErrMsgProductIDRequired)
	}
	return &domain.PurchaseRequest{
		ProductID: *req.ProductID,
		Type:      orUnknown(req.Type),
		Platform:  orUnknown(req.Platform),
	}, nil
}

// ValidProductID reports whether id has the shape of a store product id
func ValidProductID(id string) bool {
	return len(id) <= domain.MaxProductIDLength && productIDPattern.MatchString(id)
}

func orUnknown(p *string) string {
	if p == nil || *p == "" {
		return UnknownValue
	}
	return *p
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
