package ratelimit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// PurgeJob deletes counters whose window closed more than grace ago.
// Expired rows are harmless to Allow, so this only bounds table growth.
type PurgeJob struct {
	db    *pgxpool.Pool
	grace time.Duration
	now   func() time.Time
}

// NewPurgeJob creates a purge job for the rate_limits table
func NewPurgeJob(db *pgxpool.Pool, grace time.Duration) *PurgeJob {
	return &PurgeJob{db: db, grace: grace, now: time.Now}
}

// Process executes one purge
func (j *PurgeJob) Process(ctx context.Context) error {
	purged, err := PurgeExpired(ctx, j.db, j.now().Add(-j.grace))
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug(LogMsgPurged, LogFieldCount, purged)
	return nil
}
