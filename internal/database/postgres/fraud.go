package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/SlotGuard_Go/internal/domain"
	"github.com/osse101/SlotGuard_Go/internal/fraud"
)

type fraudRepository struct {
	db *pgxpool.Pool
}

// NewFraudRepository creates a PostgreSQL fraud log repository
func NewFraudRepository(db *pgxpool.Pool) fraud.Repository {
	return &fraudRepository{db: db}
}

// Record appends evt. created_at is assigned by the database.
func (r *fraudRepository) Record(ctx context.Context, evt domain.FraudEvent) error {
	var reelsJSON []byte
	if len(evt.Reels) > 0 {
		var err error
		reelsJSON, err = json.Marshal(evt.Reels)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgMarshalReels, err)
		}
	}

	_, err := r.db.Exec(ctx, SQLInsertFraudEvent,
		evt.ID,
		evt.UserID,
		string(evt.Type),
		nullIfEmpty(evt.MachineID),
		evt.Payout,
		evt.JackpotWin,
		evt.BetAmount,
		reelsJSON,
		nullIfEmpty(evt.ProductID),
		nullIfEmpty(evt.Platform),
		nullIfEmpty(evt.PurchaseType),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertFraud, err)
	}
	return nil
}

// List retrieves events matching filter, newest first
func (r *fraudRepository) List(ctx context.Context, filter fraud.Filter) ([]domain.FraudEvent, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(SQLSelectFraudEvents)

	args := []interface{}{}
	argNum := 1

	if filter.UserID != nil {
		fmt.Fprintf(&queryBuilder, " AND user_id = $%d", argNum)
		args = append(args, *filter.UserID)
		argNum++
	}

	if filter.Type != nil {
		fmt.Fprintf(&queryBuilder, " AND event_type = $%d", argNum)
		args = append(args, string(*filter.Type))
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC, id")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFraud, err)
	}
	defer rows.Close()

	return scanFraudEvents(rows)
}

// CleanupOlderThan removes events older than the specified number of days
func (r *fraudRepository) CleanupOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	result, err := r.db.Exec(ctx, SQLCleanupFraudEvents, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgCleanupFraud, err)
	}
	return result.RowsAffected(), nil
}

func scanFraudEvents(rows pgx.Rows) ([]domain.FraudEvent, error) {
	var events []domain.FraudEvent

	for rows.Next() {
		var evt domain.FraudEvent
		var eventType string
		var machineID, productID, platform, purchaseType *string
		var payout, jackpotWin, betAmount *float64
		var reelsJSON []byte

		err := rows.Scan(
			&evt.ID,
			&evt.UserID,
			&eventType,
			&machineID,
			&payout,
			&jackpotWin,
			&betAmount,
			&reelsJSON,
			&productID,
			&platform,
			&purchaseType,
			&evt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgScanFraud, err)
		}

		evt.Type = domain.FraudEventType(eventType)
		evt.MachineID = deref(machineID)
		evt.ProductID = deref(productID)
		evt.Platform = deref(platform)
		evt.PurchaseType = deref(purchaseType)
		evt.Payout = derefFloat(payout)
		evt.JackpotWin = derefFloat(jackpotWin)
		evt.BetAmount = derefFloat(betAmount)

		if len(reelsJSON) > 0 {
			if err := json.Unmarshal(reelsJSON, &evt.Reels); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgUnmarshalReels, err)
			}
		}

		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFraud, err)
	}

	return events, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
