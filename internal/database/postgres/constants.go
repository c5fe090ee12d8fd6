package postgres

// Error Messages - fraud log
const (
	ErrMsgMarshalReels   = "failed to marshal reels"
	ErrMsgUnmarshalReels = "failed to unmarshal reels"
	ErrMsgInsertFraud    = "failed to insert fraud event"
	ErrMsgQueryFraud     = "failed to query fraud events"
	ErrMsgScanFraud      = "failed to scan fraud event"
	ErrMsgCleanupFraud   = "failed to clean up fraud events"
)

// SQL - fraud log
const (
	SQLInsertFraudEvent = `
		INSERT INTO fraud_events (
			id, user_id, event_type, machine_id, payout, jackpot_win, bet_amount,
			reels, product_id, platform, purchase_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	SQLSelectFraudEvents = `
		SELECT id, user_id, event_type, machine_id, payout, jackpot_win, bet_amount,
			reels, product_id, platform, purchase_type, created_at
		FROM fraud_events
		WHERE 1=1`

	SQLCleanupFraudEvents = `
		DELETE FROM fraud_events
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
)
