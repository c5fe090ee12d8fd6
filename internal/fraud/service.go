// Package fraud keeps the server's append-only audit log of suspicious
// requests. Entries are written on the validation path and read only by
// operators; gameplay never consults them.
package fraud

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/logger"
	"github.com/osse101/SlotGuard_Go/internal/metrics"
)

// Service records and maintains fraud events
type Service interface {
	// Record appends evt, retrying once. The returned error is internal.
	Record(ctx context.Context, evt domain.FraudEvent) error

	// List returns events for operator review
	List(ctx context.Context, filter Filter) ([]domain.FraudEvent, error)

	// CleanupOldEvents removes events older than the retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo       Repository
	retryDelay time.Duration
}

// NewService creates a fraud log service over repo
func NewService(repo Repository) Service {
	return &service{repo: repo, retryDelay: 50 * time.Millisecond}
}

func (s *service) Record(ctx context.Context, evt domain.FraudEvent) error {
	log := logger.FromContext(ctx)

	if evt.ID == uuid.Nil {
		evt.ID = uuid.New()
	}

	var err error
	for attempt := 0; attempt < recordAttempts; attempt++ {
		if attempt > 0 {
			log.Warn(LogMsgRecordRetry, LogFieldEventID, evt.ID, LogFieldError, err)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: %w", ErrMsgRecordFailed, ctx.Err())
			case <-time.After(s.retryDelay):
			}
		}
		if err = s.repo.Record(ctx, evt); err == nil {
			break
		}
	}
	if err != nil {
		metrics.FraudRecordFailures.WithLabelValues(string(evt.Type)).Inc()
		log.Error(LogMsgRecordFailed, LogFieldType, evt.Type, LogFieldEventID, evt.ID, LogFieldError, err)
		return fmt.Errorf("%s: %w", ErrMsgRecordFailed, err)
	}

	metrics.FraudEvents.WithLabelValues(string(evt.Type)).Inc()
	log.Warn(LogMsgFraudRecorded,
		LogFieldType, evt.Type,
		LogFieldEventID, evt.ID,
		LogFieldUserID, evt.UserID,
		LogFieldMachineID, evt.MachineID,
		LogFieldProductID, evt.ProductID)
	return nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]domain.FraudEvent, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOlderThan(ctx, retentionDays)
}
