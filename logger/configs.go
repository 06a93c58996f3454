package logger

import "github.com/aalemi-dev/tracelab/tracer"

// Log level constants that define the available logging levels.
// These string constants are used in configuration to set the desired log level.
const (
	// Debug represents the most verbose logging level, intended for development
	// and troubleshooting. All messages are output.
	Debug = "debug"

	// Info represents the standard logging level for general operational
	// information. Debug messages are suppressed.
	Info = "info"

	// Warning represents the logging level for potential issues that aren't
	// errors. Only warning and error messages are output.
	Warning = "warning"

	// Error represents the logging level for error conditions. Only error
	// messages are output.
	Error = "error"
)

// Config defines the configuration structure for the logger.
type Config struct {
	// Level determines the minimum log level that will be output.
	// Valid values are "debug", "info", "warning", and "error"; anything else
	// falls back to "info".
	Level string `yaml:"level" envconfig:"LEVEL"`

	// ServiceName is the name of the service that is logging messages.
	// This value populates the "service" field in every log entry.
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`

	// CallerSkip controls the number of stack frames to skip when reporting
	// the caller. Use 1 (the default) when calling the logger directly, 2 when
	// one wrapper layer sits between your code and this logger, and so on.
	// Zero or negative values default to 1.
	CallerSkip int `yaml:"caller_skip" envconfig:"CALLER_SKIP"`

	// Tracer, when set, enables trace correlation: the *WithContext logging
	// methods ask it for the current trace and span ids and attach them as
	// "trace_id"/"span_id" fields. A nil Tracer leaves context-aware methods
	// behaving exactly like their plain counterparts.
	Tracer tracer.Tracer `yaml:"-"`
}
