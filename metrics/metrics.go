package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upstream names
const (
	Horizon   = "horizon"
	Friendbot = "friendbot"
)

// UpstreamRequests counts calls to Horizon and Friendbot by operation and outcome
var UpstreamRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_upstream_requests_total",
		Help: "Total number of upstream requests issued by the wallet gateway",
	},
	[]string{"upstream", "operation", "outcome"},
)

// UpstreamLatency records upstream call latency in seconds
var UpstreamLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "gateway_upstream_request_duration_seconds",
		Help:    "Latency in seconds of upstream requests issued by the wallet gateway",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"upstream", "operation"},
)

// SuppressedErrors counts read failures answered with a default value
var SuppressedErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "gateway_suppressed_errors_total",
		Help: "Lookup failures collapsed into a zero balance or empty history",
	},
	[]string{"operation"},
)

func init() {
	prometheus.MustRegister(UpstreamRequests, UpstreamLatency, SuppressedErrors)
}

// Observe records one upstream call started at start
func Observe(upstream, operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(upstream, operation, outcome).Inc()
	UpstreamLatency.WithLabelValues(upstream, operation).Observe(time.Since(start).Seconds())
}
