// Package metrics provides Prometheus-based monitoring for applications that
// embed the tracelab tracing client, including health metrics for the tracing
// instrumentation itself.
//
// The package serves two roles. It is a standalone metrics layer with dual
// HTTP endpoints for system-level and application-level metrics, and it ships
// TracerHealth, an observability.Observer implementation that turns tracer
// operation reports into Prometheus metric families.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - TracerHealth: observability.Observer implementation built on MetricsCollector
//   - FX module: Provides *Metrics, MetricsCollector, *TracerHealth, and
//     observability.Observer for dependency injection
//
// # Dual Endpoint Design
//
// The package provides two separate Prometheus endpoints:
//
// 1. System Metrics Endpoint (default: :9090)
//   - Go runtime metrics (goroutines, memory, GC stats)
//   - Process metrics (CPU, file descriptors, memory)
//   - Build info metrics
//   - Automatically registered, no user action required
//
// 2. Application Metrics Endpoint (default: :9091)
//   - User-defined custom metrics only
//   - Tracer health metrics once TracerHealth is created
//   - Full control over metric names, types, and labels
//
// This separation allows:
//   - Different scrape configurations (e.g., system metrics every 15s, app metrics every 5s)
//   - Different access controls (e.g., system metrics internal-only)
//   - Cleaner organization and cardinality management
//
// # Tracer Health Metrics
//
// TracerHealth subscribes to the tracer's observation seam. Wiring it as the
// Observer on a tracer configuration yields four metric families:
//
//	tracing_operations_total{component, operation, resource, status}
//	    Counter of tracer operations by outcome. status is "ok" or "error",
//	    resource is the trace key of the reporting tracer definition.
//
//	tracing_operation_duration_seconds{component, operation}
//	    Histogram of operation latencies. In-memory lifecycle operations land
//	    in the microsecond buckets; trace export reaches the upper ones.
//
//	tracing_trace_spans{component, resource}
//	    Histogram of spans per finished trace.
//
//	tracing_open_traces{component, resource}
//	    Gauge of traces currently in flight. A value that only climbs points
//	    at scopes that never finish.
//
// Useful PromQL starting points:
//
//	// Instrumentation error rate per tracer definition
//	sum by (resource) (rate(tracing_operations_total{status="error"}[5m]))
//	  / sum by (resource) (rate(tracing_operations_total[5m]))
//
//	// 99th percentile export latency
//	histogram_quantile(0.99, rate(tracing_operation_duration_seconds_bucket{operation="send_trace"}[5m]))
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import (
//		"github.com/aalemi-dev/tracelab/metrics"
//		"github.com/aalemi-dev/tracelab/tracer"
//	)
//
//	m := metrics.NewMetrics(metrics.Config{
//		ServiceName: "trace-gateway",
//	})
//	go m.SystemServer.ListenAndServe()
//	go m.ApplicationServer.ListenAndServe()
//
//	health := metrics.NewTracerHealth(m)
//	client, err := tracer.NewClient("api", tracer.Config{
//		Service:  "trace-gateway",
//		Observer: health,
//	})
//
// Custom application metrics work the same way as before:
//
//	shipped := m.CreateCounter(
//		"traces_shipped_total",
//		"Total traces shipped to the collector",
//		[]string{"backend", "status"},
//	)
//	shipped.WithLabelValues("collector-eu", "ok").Inc()
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule which provides
// both the concrete types and interfaces:
//
//	import (
//		"go.uber.org/fx"
//		"github.com/aalemi-dev/tracelab/logger"
//		"github.com/aalemi-dev/tracelab/metrics"
//		"github.com/aalemi-dev/tracelab/observability"
//		"github.com/aalemi-dev/tracelab/tracer"
//	)
//
//	app := fx.New(
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{ServiceName: "trace-gateway"}
//		}),
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "trace-gateway"}
//		}),
//		fx.Provide(logger.NewLoggerClient),
//		fx.Provide(func(health observability.Observer) (*tracer.TracerClient, error) {
//			return tracer.NewClient("api", tracer.Config{
//				Service:  "trace-gateway",
//				Observer: health,
//			})
//		}),
//		fx.Invoke(func(client *tracer.TracerClient) { /* ... */ }),
//	)
//	app.Run()
//
// # Performance Considerations
//
// 1. Label Cardinality:
//   - Keep label values bounded (avoid user IDs, request IDs, timestamps)
//   - The tracer health labels are bounded by the number of tracer
//     definitions times the fixed operation vocabulary
//   - Good: []string{"backend", "status"} with ~10 combinations
//   - Bad: []string{"trace_id"} with one series per trace
//
// 2. Metric Updates:
//   - All Prometheus metric operations are thread-safe
//   - ObserveOperation performs two bounded label lookups per operation and
//     no allocation beyond what the Prometheus client itself does
//
// 3. Histogram vs Summary:
//   - Histograms: Server-side quantile calculation, aggregatable across instances
//   - Summaries: Client-side quantile calculation, NOT aggregatable
//   - Prefer histograms unless you need precise quantiles per instance
//
// # Thread Safety
//
// All methods on the Metrics struct, the TracerHealth observer, and all
// Prometheus collectors are safe for concurrent use by multiple goroutines.
// No additional synchronization is needed.
//
// # Testing
//
// For unit tests, create a metrics instance without starting the servers and
// assert on the application registry with prometheus/testutil:
//
//	func TestTraceHealth(t *testing.T) {
//		m := metrics.NewMetrics(metrics.Config{
//			SystemMetricsAddress:      metrics.Ptr(""),
//			ApplicationMetricsAddress: metrics.Ptr(":0"),
//			ServiceName:               "test",
//		})
//		health := metrics.NewTracerHealth(m)
//
//		health.ObserveOperation(observability.OperationContext{
//			Component: "tracer",
//			Operation: "start_trace",
//			Resource:  "api",
//		})
//
//		n, err := testutil.GatherAndCount(m.ApplicationRegistry, "tracing_operations_total")
//		// ...
//	}
package metrics
