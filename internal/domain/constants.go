package domain

import "time"

// Rate-limited action names
const (
	ActionSpin           = "spin"
	ActionPurchaseVerify = "purchase_verify"
)

// Server-side ceilings per (user, action)
const (
	DefaultSpinRateLimit     = 120
	DefaultPurchaseRateLimit = 20
	DefaultRateLimitWindow   = 60 * time.Second
)

// Signed request lifetime
const (
	DefaultRequestTTL = 2 * time.Minute
)

// Economic bounds
const (
	DefaultMaxPayoutMultiplier = 2000
	JackpotBoundFactor         = 2
	MaxMachineIDLength         = 40
	MaxProductIDLength         = 100
	ReelCount                  = 3
)

// Client-side guard limits
const (
	MaxAnomalyRecords = 100
)

// Validation sources reported to the client
const (
	SourceServer        = "server"
	SourceLocalFallback = "local_fallback"
)
