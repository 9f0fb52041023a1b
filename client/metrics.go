package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation labels.
const (
	opProbe        = "probe"
	opLogin        = "login"
	opDictionaries = "dictionaries"
	opCreate       = "create"
	opAssign       = "assign"
	opGetTender    = "get_tender"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lgp_client",
			Name:      "requests_total",
			Help:      "API calls issued by the client, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lgp_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of API calls, including body decoding.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
