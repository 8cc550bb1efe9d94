// Package metrics exposes Prometheus instrumentation for the trading loop.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AnalysisCycles counts completed analysis cycles by symbol.
	AnalysisCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trader_analysis_cycles_total",
		Help: "Completed spike-triggered analysis cycles.",
	}, []string{"symbol"})

	// ValidationFailures counts decision validation failures by error kind.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trader_validation_failures_total",
		Help: "Decision validation failures by kind.",
	}, []string{"kind"})

	// DecisionsExecuted counts decisions that reached the executor, by action.
	DecisionsExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trader_decisions_executed_total",
		Help: "Validated decisions handed to the executor, by action.",
	}, []string{"action"})

	// InferenceLatency observes inference round-trip time in seconds.
	InferenceLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trader_inference_latency_seconds",
		Help:    "Inference service round-trip latency.",
		Buckets: prometheus.DefBuckets,
	})

	// SpikesDropped counts spike events skipped by cooldown or overlap.
	SpikesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trader_spikes_dropped_total",
		Help: "Spike events skipped, by reason.",
	}, []string{"reason"})
)

// Serve exposes /metrics on addr. Blocks; run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
