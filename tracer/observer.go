package tracer

import (
	"time"

	"go.uber.org/zap"

	"github.com/aalemi-dev/tracelab/observability"
)

// observe reports a completed operation to the configured observer. The nil
// check keeps the hot path allocation-free when no observer is set; disabled
// tracers never reach this helper at all.
func (c *TracerClient) observe(cfg Config, operation, subResource string, start time.Time, err error, size int64) {
	if cfg.Observer == nil {
		return
	}
	cfg.Observer.ObserveOperation(observability.OperationContext{
		Component:   "tracer",
		Operation:   operation,
		Resource:    string(cfg.TraceKey),
		SubResource: subResource,
		Duration:    time.Since(start),
		Error:       err,
		Size:        size,
	})
}

// logDebug emits a debug-level lifecycle log when a logger is configured.
func (c *TracerClient) logDebug(cfg Config, msg string, fields ...zap.Field) {
	if cfg.Logger == nil {
		return
	}
	cfg.Logger.Debug(msg, append(fields, zap.String("trace_key", string(cfg.TraceKey)))...)
}

// logError emits an error-level log when a logger is configured. Used for
// failures the API deliberately swallows, such as sender errors.
func (c *TracerClient) logError(cfg Config, msg string, err error, fields ...zap.Field) {
	if cfg.Logger == nil {
		return
	}
	fields = append(fields, zap.Error(err), zap.String("trace_key", string(cfg.TraceKey)))
	cfg.Logger.Error(msg, fields...)
}
