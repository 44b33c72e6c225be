// Package metrics instruments transport callers with Prometheus
// collectors.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gramkit/gramkit/transport"
	"github.com/gramkit/gramkit/wire"
)

var (
	callsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gramkit_calls_total",
			Help: "Total number of remote calls",
		},
		[]string{"method", "outcome"},
	)

	callDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gramkit_call_duration_seconds",
			Help:    "Remote call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	batchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gramkit_batch_size",
			Help:    "Number of requests per batched call",
			Buckets: []float64{1, 2, 4, 8, 16, 26, 32},
		},
	)
)

func init() {
	// Register metrics with the default registry
	prometheus.MustRegister(callsTotal)
	prometheus.MustRegister(callDuration)
	prometheus.MustRegister(batchSize)
}

// Compile-time interface compliance check.
var _ transport.Caller = (*instrumentedCaller)(nil)

type instrumentedCaller struct {
	next transport.Caller
}

// Instrument wraps a caller so every invocation is counted and timed.
func Instrument(next transport.Caller) transport.Caller {
	return &instrumentedCaller{next: next}
}

// Invoke executes one request, recording its duration and outcome.
func (c *instrumentedCaller) Invoke(ctx context.Context, req wire.Request) (wire.Response, error) {
	start := time.Now()

	resp, err := c.next.Invoke(ctx, req)

	callDuration.WithLabelValues(req.Method()).Observe(time.Since(start).Seconds())
	callsTotal.WithLabelValues(req.Method(), outcome(err)).Inc()

	return resp, err
}

// InvokeBatch executes a batch, recording its size and one outcome per
// contained request.
func (c *instrumentedCaller) InvokeBatch(ctx context.Context, reqs []wire.Request) ([]wire.Response, error) {
	start := time.Now()

	batchSize.Observe(float64(len(reqs)))

	resps, err := c.next.InvokeBatch(ctx, reqs)

	callDuration.WithLabelValues("batch").Observe(time.Since(start).Seconds())

	for _, req := range reqs {
		callsTotal.WithLabelValues(req.Method(), outcome(err)).Inc()
	}

	return resps, err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case transport.IsConnectivity(err):
		return "connectivity"
	default:
		return "error"
	}
}
