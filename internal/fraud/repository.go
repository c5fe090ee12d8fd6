package fraud

import (
	"context"
	"time"

	"github.com/osse101/SlotGuard_Go/internal/domain"
)

// Filter narrows a fraud log query. Zero values match everything.
type Filter struct {
	UserID *string
	Type   *domain.FraudEventType
	Since  *time.Time
	Until  *time.Time
	Limit  int
}

// Repository defines storage for the append-only fraud log
type Repository interface {
	// Record appends an event; the store assigns CreatedAt. Recording an ID
	// that already exists is a no-op, so a retried write stays single.
	Record(ctx context.Context, evt domain.FraudEvent) error

	// List returns events matching filter, newest first
	List(ctx context.Context, filter Filter) ([]domain.FraudEvent, error)

	// CleanupOlderThan removes events older than the retention period
	CleanupOlderThan(ctx context.Context, retentionDays int) (int64, error)
}
