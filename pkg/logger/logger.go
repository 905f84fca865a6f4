// Package logger defines the logging contract used across plotforge.
package logger

type Level int8

const (
	Disabled   Level = -1   // Disabled turns logging off.
	TraceLevel Level = iota // TraceLevel is used for pipeline stage tracing.
	DebugLevel              // DebugLevel is used for resolved options and chosen strategies.
	InfoLevel               // InfoLevel is used for the written output path.
	WarnLevel               // WarnLevel is used for non-fatal configuration warnings.
	ErrorLevel              // ErrorLevel is used for input and render failures.
	FatalLevel              // FatalLevel logs and exits.
	NoLevel                 // NoLevel is used when no level applies.
)

type Logger interface {
	WithField(key string, value any) Logger  // WithField returns a logger with the given key-value pair.
	WithFields(fields map[string]any) Logger // WithFields returns a logger with the given fields.
	WithError(err error) Logger              // WithError returns a logger with the given error.

	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Fatal(args ...any)

	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)

	SetLevel(level Level) // SetLevel sets the logging level for the logger.
	GetLevel() Level      // GetLevel returns the logging level for the logger.
}

// ParseLevel maps a textual level to Level, defaulting to InfoLevel
func ParseLevel(level string) Level {
	switch level {
	case "disabled", "off":
		return Disabled
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}
