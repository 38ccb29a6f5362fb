package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Verification workflow
	CodesIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_verification_codes_issued_total",
		Help: "Total number of one-time verification codes issued.",
	}, []string{"purpose"})
	CodeRedemptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_verification_code_redemptions_total",
		Help: "Total number of verification code redemption attempts by outcome.",
	}, []string{"purpose", "result"}) // result: "ok" or the credential error kind
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_notifications_total",
		Help: "Total number of notification delivery attempts by outcome.",
	}, []string{"status"}) // status: "sent", "failed" or "timeout"

	// Search
	SearchResultsReturned = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "app_search_results",
		Help:    "Number of records returned per search request.",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	}, []string{"kind"}) // kind: "teams" or "users"

	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
	HTTPRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
