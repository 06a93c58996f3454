package metrics

import (
	"github.com/aalemi-dev/tracelab/observability"
)

// statusOK and statusError are the two values of the status label on the
// operations counter. Keeping the outcome in a label (instead of separate
// metric families) makes error-rate queries a single PromQL expression.
const (
	statusOK    = "ok"
	statusError = "error"
)

// TracerHealth turns tracer operation reports into Prometheus metrics. It
// implements observability.Observer and is meant to be set as the Observer
// on a tracer configuration, giving dashboards a view of the instrumentation
// itself: how often each operation runs, how long it takes, how many traces
// are in flight, and how large finished traces are.
//
// Metric families (all on the application metrics endpoint, service-labeled):
//
//	tracing_operations_total{component, operation, resource, status}
//	tracing_operation_duration_seconds{component, operation}
//	tracing_trace_spans{component, resource}
//	tracing_open_traces{component, resource}
//
// The resource label carries the trace key of the reporting tracer, so one
// process hosting several tracer definitions ("api", "worker") stays
// distinguishable. Label cardinality is bounded by the number of tracer
// definitions times the fixed operation vocabulary.
type TracerHealth struct {
	operations Counter
	durations  Histogram
	traceSpans Histogram
	openTraces Gauge
}

// NewTracerHealth creates the tracer health metric families and registers
// them with the given collector's application registry.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "trace-gateway"})
//	health := metrics.NewTracerHealth(m)
//
//	client, err := tracer.NewClient("api", tracer.Config{
//	    Service:  "trace-gateway",
//	    Observer: health,
//	})
func NewTracerHealth(m MetricsCollector) *TracerHealth {
	return &TracerHealth{
		operations: m.CreateCounter(
			"tracing_operations_total",
			"Total tracer operations observed, by outcome.",
			[]string{"component", "operation", "resource", "status"},
		),
		durations: m.CreateHistogram(
			"tracing_operation_duration_seconds",
			"Duration of tracer operations in seconds.",
			[]string{"component", "operation"},
			// Lifecycle operations are in-memory and land in the
			// microsecond buckets; export operations reach the upper ones.
			[]float64{.000001, .00001, .0001, .001, .01, .1, 1},
		),
		traceSpans: m.CreateHistogram(
			"tracing_trace_spans",
			"Number of spans in a finished trace.",
			[]string{"component", "resource"},
			[]float64{1, 2, 5, 10, 25, 50, 100, 250},
		),
		openTraces: m.CreateGauge(
			"tracing_open_traces",
			"Traces currently in flight.",
			[]string{"component", "resource"},
		),
	}
}

// ObserveOperation records one completed tracer operation.
//
// Every operation increments the operations counter (with status "ok" or
// "error") and feeds the duration histogram. Successful start_trace and
// continue_trace operations additionally raise the open-traces gauge;
// a successful finish_trace lowers it and records the finished trace's
// span count.
func (h *TracerHealth) ObserveOperation(op observability.OperationContext) {
	status := statusOK
	if op.Error != nil {
		status = statusError
	}

	h.operations.WithLabelValues(op.Component, op.Operation, op.Resource, status).Inc()
	h.durations.WithLabelValues(op.Component, op.Operation).Observe(op.Duration.Seconds())

	if op.Error != nil {
		return
	}

	// The operation vocabulary here mirrors what the tracer client reports.
	switch op.Operation {
	case "start_trace", "continue_trace":
		h.openTraces.WithLabelValues(op.Component, op.Resource).Inc()
	case "finish_trace":
		h.openTraces.WithLabelValues(op.Component, op.Resource).Dec()
		h.traceSpans.WithLabelValues(op.Component, op.Resource).Observe(float64(op.Size))
	}
}
