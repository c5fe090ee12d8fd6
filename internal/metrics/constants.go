package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every business metric
const Namespace = "slotguard"

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameSpinsValidated       = "spins_validated_total"
	MetricNameFraudEvents          = "fraud_events_total"
	MetricNameFraudRecordFailures  = "fraud_record_failures_total"
	MetricNameRateLimited          = "rate_limited_total"
	MetricNameSignatureRejections  = "signature_rejections_total"
	MetricNamePurchasesVerified    = "purchases_verified_total"
	MetricNameClampedPayoutRatio   = "clamped_payout_ratio"
	MetricNameSuspiciousIPRequests = "suspicious_ip_requests_total"
)

// Maintenance metric names
const (
	MetricNameJobRuns     = "maintenance_job_runs_total"
	MetricNameJobDuration = "maintenance_job_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextSpinsValidated       = "Spin validation outcomes by result"
	HelpTextFraudEvents          = "Fraud events recorded by type"
	HelpTextFraudRecordFailures  = "Fraud events that could not be stored"
	HelpTextRateLimited          = "Requests rejected by the rate limiter by action"
	HelpTextSignatureRejections  = "Signed requests rejected by reason"
	HelpTextPurchasesVerified    = "Purchase verification outcomes by result"
	HelpTextClampedPayoutRatio   = "Claimed payout as a fraction of the maximum allowed payout"
	HelpTextSuspiciousIPRequests = "Requests flagged by the suspicious activity detector"
)

// Maintenance metric help text
const (
	HelpTextJobRuns     = "Background maintenance job runs by job and result"
	HelpTextJobDuration = "Background maintenance job run time in seconds"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelResult = "result"
	LabelAction = "action"
	LabelReason = "reason"
	LabelJob    = "job"
)

// Result label values
const (
	ResultValid      = "valid"
	ResultSuspicious = "suspicious"
	ResultRejected   = "rejected"
	ResultVerified   = "verified"
	ResultUnverified = "unverified"
	ResultSucceeded  = "succeeded"
	ResultFailed     = "failed"
	ResultSkipped    = "skipped"
)

// PathUnmatched labels requests that did not match a route
const PathUnmatched = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PayoutRatioBuckets covers honest payouts (well under 1) through claims far
// above the ceiling
var PayoutRatioBuckets = []float64{0, .001, .01, .05, .1, .25, .5, .75, 1, 2, 10, 100}

// JobDurationBuckets spans quick purges up to the default job timeout
var JobDurationBuckets = []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300}
