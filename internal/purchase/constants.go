package purchase

import "regexp"

// productIDPattern is the accepted shape of a store product identifier
var productIDPattern = regexp.MustCompile(`(?i)^[a-z0-9_./-]+$`)

// UnknownValue stands in for an absent type or platform in the fraud log
const UnknownValue = "unknown"

// Tracing
const (
	TracerName         = "github.com/osse101/SlotGuard_Go/internal/purchase"
	SpanVerifyPurchase = "purchase.VerifyPurchase"
	AttrPlatform       = "slotguard.platform"
	AttrVerified       = "slotguard.verified"
)

// Error messages
const (
	ErrMsgMalformedPurchase = "purchase payload is malformed"
	ErrMsgProductIDRequired = "productId is required"
)

// Log messages
const (
	LogMsgPurchaseVerified = "Purchase verified"
	LogMsgPurchaseAnomaly  = "Purchase product id rejected"
	LogMsgPurchaseRejected = "Purchase request rejected"
)

// Log field keys
const (
	LogFieldProductID = "product_id"
	LogFieldPlatform  = "platform"
	LogFieldType      = "purchase_type"
	LogFieldError     = "error"
)
