package evalforge

import (
	"log/slog"
)

// StructuredLogger provides structured, leveled logging for the SDK.
// It is compatible with log/slog via NewSlogAdapter, and with any
// similar structured logging library.
type StructuredLogger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger is a logger that discards all log messages.
// Use this to disable logging entirely.
type NopLogger struct{}

// Debug implements StructuredLogger.Debug.
func (NopLogger) Debug(msg string, args ...any) {}

// Info implements StructuredLogger.Info.
func (NopLogger) Info(msg string, args ...any) {}

// Warn implements StructuredLogger.Warn.
func (NopLogger) Warn(msg string, args ...any) {}

// Error implements StructuredLogger.Error.
func (NopLogger) Error(msg string, args ...any) {}

// Ensure NopLogger implements StructuredLogger.
var _ StructuredLogger = NopLogger{}

// SlogAdapter adapts a slog.Logger to the StructuredLogger interface.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	client, _ := evalforge.New(key,
//	    evalforge.WithLogger(evalforge.NewSlogAdapter(logger)),
//	)
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter wrapping the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

// Debug implements StructuredLogger.Debug.
func (a *SlogAdapter) Debug(msg string, args ...any) {
	a.logger.Debug(msg, args...)
}

// Info implements StructuredLogger.Info.
func (a *SlogAdapter) Info(msg string, args ...any) {
	a.logger.Info(msg, args...)
}

// Warn implements StructuredLogger.Warn.
func (a *SlogAdapter) Warn(msg string, args ...any) {
	a.logger.Warn(msg, args...)
}

// Error implements StructuredLogger.Error.
func (a *SlogAdapter) Error(msg string, args ...any) {
	a.logger.Error(msg, args...)
}

// With returns a new SlogAdapter with the given attributes added.
func (a *SlogAdapter) With(args ...any) *SlogAdapter {
	return &SlogAdapter{logger: a.logger.With(args...)}
}

// Ensure SlogAdapter implements StructuredLogger.
var _ StructuredLogger = (*SlogAdapter)(nil)
