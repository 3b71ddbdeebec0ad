// Package observability provides logging, metrics and tracing hooks for the
// message bus.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// LogProcessingStarted logs the transition to active processing.
func LogProcessingStarted(logger *slog.Logger, backlog int) {
	if logger == nil {
		return
	}
	logger.Info("event processing started",
		slog.Int("backlog", backlog),
	)
}

// LogProcessingStopped logs the transition back to queuing.
func LogProcessingStopped(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Info("event processing stopped")
}

// LogDrainComplete logs the end of a backlog flush.
func LogDrainComplete(logger *slog.Logger, drained, remaining int, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("backlog drained",
		slog.Int("drained", drained),
		slog.Int("remaining", remaining),
		slog.Float64("duration_ms", Milliseconds(duration)),
	)
}

// LogQueued logs an event held back because processing is inactive.
func LogQueued(logger *slog.Logger, messageID, eventType string, depth int) {
	if logger == nil {
		return
	}
	logger.Debug("event queued",
		slog.String("message_id", messageID),
		slog.String("event_type", eventType),
		slog.Int("depth", depth),
	)
}

// LogQueueCleared logs a backlog discard.
func LogQueueCleared(logger *slog.Logger, dropped int) {
	if logger == nil {
		return
	}
	logger.Debug("backlog cleared",
		slog.Int("dropped", dropped),
	)
}

// LogListenerError logs a listener failure. The error is still returned to
// the caller; this is only a record of it.
func LogListenerError(logger *slog.Logger, eventType, listenerID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("listener failed",
		slog.String("event_type", eventType),
		slog.String("listener_id", listenerID),
		slog.String("error", err.Error()),
	)
}

// LogWarningScheduled logs that the not-started warning timer was armed.
func LogWarningScheduled(logger *slog.Logger, eventType string, delay time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("not-started warning scheduled",
		slog.String("event_type", eventType),
		slog.Duration("delay", delay),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... drain backlog ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
