// Package observability provides Prometheus metrics for upstream calls
// and the proxy cache.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream sources
const (
	SourceSolanaRPC     = "solana_rpc"
	SourceDexScreener   = "dexscreener"
	SourceSolanaTracker = "solanatracker"
)

// Outcomes
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream API calls",
		},
		[]string{"source", "outcome"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream API call duration in seconds",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15},
		},
		[]string{"source"},
	)

	cacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proxy_cache_lookups_total",
			Help: "Proxy cache lookups by result",
		},
		[]string{"endpoint", "result"},
	)

	holdingPartialTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "holding_partial_reads_total",
			Help: "On-chain holding reads where some token program lookups failed",
		},
	)
)

// ObserveUpstream records one upstream call started at start
func ObserveUpstream(source string, start time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	upstreamRequestsTotal.WithLabelValues(source, outcome).Inc()
	upstreamRequestDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// ObserveCacheLookup records a proxy cache hit or miss
func ObserveCacheLookup(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookupsTotal.WithLabelValues(endpoint, result).Inc()
}

// ObservePartialHolding counts a holding read with failed program lookups
func ObservePartialHolding() {
	holdingPartialTotal.Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
