package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	SpinsValidated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSpinsValidated,
			Help:      HelpTextSpinsValidated,
		},
		[]string{LabelResult},
	)

	FraudEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameFraudEvents,
			Help:      HelpTextFraudEvents,
		},
		[]string{LabelType},
	)

	FraudRecordFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameFraudRecordFailures,
			Help:      HelpTextFraudRecordFailures,
		},
		[]string{LabelType},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameRateLimited,
			Help:      HelpTextRateLimited,
		},
		[]string{LabelAction},
	)

	SignatureRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSignatureRejections,
			Help:      HelpTextSignatureRejections,
		},
		[]string{LabelReason},
	)

	PurchasesVerified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePurchasesVerified,
			Help:      HelpTextPurchasesVerified,
		},
		[]string{LabelResult},
	)

	ClampedPayoutRatio = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameClampedPayoutRatio,
			Help:      HelpTextClampedPayoutRatio,
			Buckets:   PayoutRatioBuckets,
		},
	)

	SuspiciousIPRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameSuspiciousIPRequests,
			Help:      HelpTextSuspiciousIPRequests,
		},
	)
)

// Maintenance Metrics
var (
	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameJobRuns,
			Help:      HelpTextJobRuns,
		},
		[]string{LabelJob, LabelResult},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameJobDuration,
			Help:      HelpTextJobDuration,
			Buckets:   JobDurationBuckets,
		},
		[]string{LabelJob},
	)
)
