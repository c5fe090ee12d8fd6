package fraud

import (
	"context"
	"fmt"

	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// CleanupJob expires fraud events past the retention period. It runs on the
// maintenance pool, which times and logs each run.
type CleanupJob struct {
	svc       Service
	retention int
}

// NewCleanupJob keeps events for retentionDays; non-positive values select
// DefaultRetentionDays
func NewCleanupJob(svc Service, retentionDays int) *CleanupJob {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupJob{svc: svc, retention: retentionDays}
}

// Process runs one cleanup pass
func (j *CleanupJob) Process(ctx context.Context) error {
	expired, err := j.svc.CleanupOldEvents(ctx, j.retention)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCleanupFailed, err)
	}
	if expired > 0 {
		logger.FromContext(ctx).Info(LogMsgEventsExpired,
			LogFieldExpiredCount, expired,
			LogFieldRetentionDays, j.retention)
	}
	return nil
}
