package domain

import (
	"time"

	"github.com/google/uuid"
)

// FraudEventType identifies why a request was flagged
type FraudEventType string

const (
	FraudSpinAnomaly     FraudEventType = "spin_anomaly"
	FraudPurchaseAnomaly FraudEventType = "purchase_anomaly"
)

// FraudEvent is an append-only audit record of a suspicious request.
// CreatedAt is assigned by the store, not the caller.
type FraudEvent struct {
	ID           uuid.UUID      `json:"id"`
	UserID       string         `json:"uid"`
	Type         FraudEventType `json:"type"`
	MachineID    string         `json:"machineId,omitempty"`
	Payout       float64        `json:"payout,omitempty"`
	JackpotWin   float64        `json:"jackpotWin,omitempty"`
	BetAmount    float64        `json:"betAmount,omitempty"`
	Reels        []string       `json:"reels,omitempty"`
	ProductID    string         `json:"productId,omitempty"`
	Platform     string         `json:"platform,omitempty"`
	PurchaseType string         `json:"purchaseType,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
