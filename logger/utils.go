package logger

import (
	"context"
	"strconv"

	"go.uber.org/zap"
)

// extractTracingFields asks the wired tracer for the caller's position in the
// active trace and returns it as Zap fields, so log entries can be joined
// with the trace that produced them.
//
// When no tracer is wired, the context is nil, the tracer is disabled, or no
// trace is active, this returns no fields and the entry logs normally. The
// span id is attached only while a span is actually open; a trace whose spans
// all finished still correlates by trace id alone.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if l.tracer == nil || ctx == nil {
		return nil
	}

	traceID, ok := l.tracer.CurrentTraceID(ctx)
	if !ok {
		return nil
	}

	fields := []zap.Field{
		zap.String("trace_id", strconv.FormatUint(traceID, 10)),
	}
	if spanID, ok := l.tracer.CurrentSpanID(ctx); ok {
		fields = append(fields, zap.String("span_id", strconv.FormatUint(spanID, 10)))
	}
	return fields
}

// convertToZapFields converts an error and additional field maps into Zap's
// structured logging fields. If multiple field maps contain the same key, the
// later maps win.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	var zapFields []zap.Field
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}

	// Iterate through optional field maps and convert them into Zap fields.
	for _, fieldMap := range fields {
		for key, value := range fieldMap {
			zapFields = append(zapFields, zap.Any(key, value))
		}
	}
	return zapFields
}

// Info logs an informational message, along with an optional error and
// structured fields. Use Info for general application progress.
//
// Example:
//
//	log.Info("trace exported", nil, map[string]interface{}{
//	    "spans":   12,
//	    "backend": "collector-eu",
//	})
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Info(msg, l.convertToZapFields(err, fields...)...)
}

// Debug logs a debug-level message, useful for development and
// troubleshooting.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Debug(msg, l.convertToZapFields(err, fields...)...)
}

// Warn logs a warning message, indicating potential issues that aren't
// necessarily errors.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Warn(msg, l.convertToZapFields(err, fields...)...)
}

// Error logs an error message, including details of the error and additional
// context fields.
//
// Example:
//
//	if err := sender.Send(trace); err != nil {
//	    log.Error("failed to ship trace", err, map[string]interface{}{
//	        "trace_id": trace.ID,
//	        "spans":    len(trace.Spans),
//	    })
//	}
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Error(msg, l.convertToZapFields(err, fields...)...)
}

// Fatal logs a critical error message and terminates the application.
// This method calls os.Exit(1) after logging the message and does not return.
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.Zap.Fatal(msg, l.convertToZapFields(err, fields...)...)
}

// InfoWithContext logs an informational message with trace correlation.
// When a tracer is wired and the context carries an active trace, the entry
// gains trace_id and span_id fields.
//
// Example:
//
//	log.InfoWithContext(ctx, "payment authorized", nil, map[string]interface{}{
//	    "amount_cents": 4200,
//	})
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Info(msg, zapFields...)
}

// DebugWithContext logs a debug-level message with trace correlation.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Debug(msg, zapFields...)
}

// WarnWithContext logs a warning message with trace correlation.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Warn(msg, zapFields...)
}

// ErrorWithContext logs an error message with trace correlation.
//
// Example:
//
//	if err := chargeCard(ctx, card); err != nil {
//	    log.ErrorWithContext(ctx, "charge failed", err, map[string]interface{}{
//	        "provider": "stripe",
//	    })
//	}
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Error(msg, zapFields...)
}

// FatalWithContext logs a critical error message with trace correlation and
// terminates the application. This method calls os.Exit(1) after logging the
// message and does not return.
func (l *LoggerClient) FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	zapFields := l.convertToZapFields(err, fields...)
	zapFields = append(zapFields, l.extractTracingFields(ctx)...)
	l.Zap.Fatal(msg, zapFields...)
}
