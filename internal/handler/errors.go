package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgUnauthenticated    = "Sign in to continue."
	ErrMsgTooManyRequests    = "Too many requests. Please try again later."
	ErrMsgInvalidRequest     = "Invalid request. Please check your inputs."
	ErrMsgSignatureRejected  = "Request could not be verified."
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgBodyTooLarge       = "Request body too large"
	ErrMsgReadBodyFailed     = "Failed to read request body"
	ErrMsgInvalidQuery       = "Invalid query parameter"
	ErrMsgListFraudFailed    = "Failed to list fraud events"
)
