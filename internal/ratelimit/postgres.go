package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SlotGuard_Go/internal/logger"
)

// postgresLimiter implements Limiter on the rate_limits table
type postgresLimiter struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewPostgresLimiter creates a limiter whose counters are shared by every
// instance connected to the same database
func NewPostgresLimiter(db *pgxpool.Pool) Limiter {
	return &postgresLimiter{db: db, now: time.Now}
}

// Allow runs the read-check-increment under a transaction-scoped advisory
// lock on (subject, action). Advisory locks work even when no row exists yet,
// unlike SELECT FOR UPDATE, so the first window is serialised as well.
func (b *postgresLimiter) Allow(ctx context.Context, subject, action string, limit int, window time.Duration) error {
	if limit <= 0 {
		return errors.New(ErrMsgInvalidLimit)
	}

	tx, err := b.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, SQLAdvisoryLock, hashSubjectAction(subject, action)); err != nil {
		return fmt.Errorf(ErrMsgAcquireLockFailed, err)
	}

	var current counter
	err = tx.QueryRow(ctx, SQLSelectCounter, subject, action).Scan(&current.count, &current.resetAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf(ErrMsgReadCounterFailed, err)
	}

	next, err := current.next(action, b.now(), limit, window)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgLimitExceeded,
			LogFieldSubject, subject, LogFieldAction, action, LogFieldCount, current.count)
		return err
	}

	if _, err := tx.Exec(ctx, SQLUpsertCounter, subject, action, next.count, next.resetAt); err != nil {
		return fmt.Errorf(ErrMsgWriteCounterFailed, err)
	}

	// Commit releases the advisory lock
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return nil
}

// PurgeExpired deletes counters whose window ended before cutoff
func PurgeExpired(ctx context.Context, db *pgxpool.Pool, cutoff time.Time) (int64, error) {
	tag, err := db.Exec(ctx, SQLDeleteExpired, cutoff)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgPurgeFailed, err)
	}
	return tag.RowsAffected(), nil
}

// hashSubjectAction derives the advisory lock key for one counter
func hashSubjectAction(subject, action string) int64 {
	h := sha256.Sum256([]byte(subject + HashSeparator + action))
	// First 8 bytes with the sign bit masked off
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}
