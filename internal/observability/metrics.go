// Package observability defines and registers the custom Prometheus
// metrics shared by the gateway and the auth service. It is the single
// source of truth for metric names, labels, and help strings.
//
// Metrics register with the default registry at init; both binaries
// expose them on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurant"

// BrokerRequestsTotal counts broker messages dispatched to handlers.
// Labels:
//   - pattern: the message pattern (e.g. "user.signup")
//   - outcome: "ok" or "error"
var BrokerRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "broker_requests_total",
		Help:      "Total number of broker requests dispatched, by pattern and outcome.",
	},
	[]string{"pattern", "outcome"},
)

// BrokerRequestDuration measures handler latency from dequeue to reply.
// Label:
//   - pattern: the message pattern
var BrokerRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "broker_request_duration_seconds",
		Help:      "Duration of broker request handling from dequeue to reply publication.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"pattern"},
)

// SignupsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "created", "conflict", "invalid_data", or "failed"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by outcome.",
	},
	[]string{"outcome"},
)
