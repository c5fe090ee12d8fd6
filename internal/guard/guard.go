// Package guard holds the client's economic safeguards: a local action
// throttle, tamper-evident persisted state, delta-based cheat detection and
// a bounded anomaly log.
//
// None of this is a security boundary. The server's rate limiter and spin
// validation are the enforcement points; the guard keeps honest clients
// honest and records what it saw.
package guard

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/kvstore"
	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// Guard wraps a key-value store with the client-side checks
type Guard struct {
	store  kvstore.Store
	sealer *sealer
	now    func() time.Time

	// serialises read-modify-write of the rate limit, integrity and anomaly maps
	mu sync.Mutex
}

type rateWindow struct {
	Count   int   `json:"count"`
	ResetAt int64 `json:"resetAt"`
}

// New creates a guard over store. An empty encryptionKey selects
// DevEncryptionKey.
func New(ctx context.Context, store kvstore.Store, encryptionKey string) (*Guard, error) {
	if encryptionKey == "" {
		logger.FromContext(ctx).Warn(LogMsgDevEncryptionKey)
		encryptionKey = DevEncryptionKey
	}
	s, err := newSealer(encryptionKey)
	if err != nil {
		return nil, err
	}
	return &Guard{
		store:  store,
		sealer: s,
		now:    time.Now,
	}, nil
}

// CheckRateLimit counts one attempt at action and reports whether it is
// within maxAttempts for the current window. A rejected attempt does not
// advance the counter. A new window starts once the previous one has passed.
func (g *Guard) CheckRateLimit(ctx context.Context, action string, maxAttempts int, window time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().UnixMilli()

	limits := make(map[string]rateWindow)
	if _, err := g.store.Get(ctx, KeyRateLimits, &limits); err != nil {
		// unreadable counters restart rather than block play
		limits = make(map[string]rateWindow)
	}

	w, ok := limits[action]
	switch {
	case !ok || now > w.ResetAt:
		w = rateWindow{Count: 1, ResetAt: now + window.Milliseconds()}
	case w.Count >= maxAttempts:
		g.recordLocked(ctx, AnomalyRateLimited, map[string]interface{}{DetailAction: action})
		return false
	default:
		w.Count++
	}

	limits[action] = w
	if err := g.store.Set(ctx, KeyRateLimits, limits); err != nil {
		logger.FromContext(ctx).Warn(LogMsgRateLimitStore, "error", err)
	}
	return true
}

// DetectCheat reports whether moving from previousValue to newValue is
// implausible: a gain above maxGain, a loss above NegativeDeltaFactor×maxGain,
// or a negative result. Both bounds saturate instead of wrapping.
func DetectCheat(newValue, previousValue, maxGain int64) bool {
	if newValue < 0 {
		return true
	}
	// newValue is non-negative, so only a negative previousValue can push the
	// difference past MaxInt64, and any such gain is above maxGain.
	if previousValue < 0 && newValue > math.MaxInt64+previousValue {
		return true
	}
	delta := newValue - previousValue
	if delta > maxGain {
		return true
	}
	return delta < lossFloor(maxGain)
}

// lossFloor is -NegativeDeltaFactor×maxGain clamped to the int64 range
func lossFloor(maxGain int64) int64 {
	switch {
	case maxGain > math.MaxInt64/NegativeDeltaFactor:
		return math.MinInt64
	case maxGain < math.MinInt64/NegativeDeltaFactor:
		return math.MaxInt64
	default:
		return -maxGain * NegativeDeltaFactor
	}
}

// ApplyCoinDelta returns next when the transition passes DetectCheat, and
// otherwise keeps previous and records an anomaly. The second result reports
// whether the transition was rejected.
func (g *Guard) ApplyCoinDelta(ctx context.Context, previous, next, maxGain int64) (int64, bool) {
	if DetectCheat(next, previous, maxGain) {
		g.RecordAnomaly(ctx, AnomalyCheatDetected, map[string]interface{}{
			DetailPrevious: previous,
			DetailNext:     next,
			DetailMaxGain:  maxGain,
		})
		return previous, true
	}
	return next, false
}

// SaveSecure encrypts value under key and records its integrity digest
func (g *Guard) SaveSecure(ctx context.Context, key string, value interface{}) error {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncryptFailed, err)
	}
	sealed, err := g.sealer.seal(plaintext)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Set(ctx, key, sealed); err != nil {
		return err
	}

	digests := make(map[string]string)
	if _, err := g.store.Get(ctx, KeyDataIntegrity, &digests); err != nil {
		digests = make(map[string]string)
	}
	digests[key] = digest(plaintext)
	return g.store.Set(ctx, KeyDataIntegrity, digests)
}

// LoadSecure returns the value saved under key, or def when it is missing,
// cannot be decrypted, or does not match its recorded digest. Rejections are
// recorded as anomalies; a missing value is not.
func LoadSecure[T any](ctx context.Context, g *Guard, key string, def T) T {
	plaintext, err := g.openSecure(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgSecureLoadRejected, DetailKey, key, "error", err)
		return def
	}
	if plaintext == nil {
		return def
	}

	var v T
	if err := json.Unmarshal(plaintext, &v); err != nil {
		g.RecordAnomaly(ctx, AnomalyIntegrityViolation, map[string]interface{}{DetailKey: key, DetailError: err.Error()})
		return def
	}
	return v
}

// openSecure returns the verified plaintext under key, nil if absent
func (g *Guard) openSecure(ctx context.Context, key string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sealed string
	found, err := g.store.Get(ctx, key, &sealed)
	if !found {
		return nil, nil
	}
	if err != nil {
		g.recordLocked(ctx, AnomalyDecryptFailed, map[string]interface{}{DetailKey: key, DetailError: err.Error()})
		return nil, err
	}

	plaintext, err := g.sealer.open(sealed)
	if err != nil {
		g.recordLocked(ctx, AnomalyDecryptFailed, map[string]interface{}{DetailKey: key, DetailError: err.Error()})
		return nil, err
	}

	digests := make(map[string]string)
	if _, err := g.store.Get(ctx, KeyDataIntegrity, &digests); err != nil {
		digests = nil
	}
	expected, ok := digests[key]
	if !ok {
		g.recordLocked(ctx, AnomalyIntegrityViolation, map[string]interface{}{DetailKey: key, DetailError: ErrMsgDigestMissing})
		return nil, fmt.Errorf("%s", ErrMsgDigestMissing)
	}
	if expected != digest(plaintext) {
		g.recordLocked(ctx, AnomalyIntegrityViolation, map[string]interface{}{DetailKey: key, DetailError: ErrMsgDigestMismatch})
		return nil, fmt.Errorf("%s", ErrMsgDigestMismatch)
	}
	return plaintext, nil
}

// RemoveSecure deletes key and its digest
func (g *Guard) RemoveSecure(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Remove(ctx, key); err != nil {
		return err
	}
	digests := make(map[string]string)
	if found, err := g.store.Get(ctx, KeyDataIntegrity, &digests); err != nil || !found {
		return nil
	}
	delete(digests, key)
	return g.store.Set(ctx, KeyDataIntegrity, digests)
}

// RecordAnomaly appends to the anomaly log, dropping the oldest entries past
// domain.MaxAnomalyRecords. Storage failures are logged, never returned.
func (g *Guard) RecordAnomaly(ctx context.Context, anomalyType string, details map[string]interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.recordLocked(ctx, anomalyType, details)
}

func (g *Guard) recordLocked(ctx context.Context, anomalyType string, details map[string]interface{}) {
	log := logger.FromContext(ctx)
	log.Warn(LogMsgAnomalyRecorded, "type", anomalyType, "details", details)

	var records []domain.AnomalyRecord
	if _, err := g.store.Get(ctx, KeyAnomalies, &records); err != nil {
		records = nil
	}
	records = append(records, domain.AnomalyRecord{
		Type:      anomalyType,
		Details:   details,
		Timestamp: g.now().UnixMilli(),
	})
	if len(records) > domain.MaxAnomalyRecords {
		records = records[len(records)-domain.MaxAnomalyRecords:]
	}

	if err := g.store.Set(ctx, KeyAnomalies, records); err != nil {
		log.Error(LogMsgAnomalyStoreFailed, "error", err)
	}
}

// Anomalies returns the recorded anomalies, oldest first
func (g *Guard) Anomalies(ctx context.Context) []domain.AnomalyRecord {
	g.mu.Lock()
	defer g.mu.Unlock()

	var records []domain.AnomalyRecord
	if _, err := g.store.Get(ctx, KeyAnomalies, &records); err != nil {
		return nil
	}
	return records
}
