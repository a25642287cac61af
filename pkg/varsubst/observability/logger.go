// Package observability provides structured logging, metrics and tracing
// for substitution runs.
//
// Logging uses slog. Metrics and tracing use the global OpenTelemetry
// providers and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
// Returns a new logger with run_id and source fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "0b6e...", "template.conf")
//	enriched.Info("rendering") // includes run_id, source
func EnrichLogger(logger *slog.Logger, runID, source string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("source", source),
	)
}

// LogRunStart logs the start of a substitution run.
func LogRunStart(logger *slog.Logger, runID string, inputBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("substitution starting",
		slog.String("run_id", runID),
		slog.Int("input_bytes", inputBytes),
	)
}

// LogRunComplete logs successful run completion.
func LogRunComplete(logger *slog.Logger, runID string, durationMs float64, outputBytes, undefined int) {
	if logger == nil {
		return
	}
	logger.Info("substitution completed",
		slog.String("run_id", runID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("output_bytes", outputBytes),
		slog.Int("undefined", undefined),
	)
}

// LogRunError logs a failed run.
func LogRunError(logger *slog.Logger, runID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("substitution failed",
		slog.String("run_id", runID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogUndefined logs a name that had no value during a lenient run.
func LogUndefined(logger *slog.Logger, name string) {
	if logger == nil {
		return
	}
	logger.Debug("undefined variable",
		slog.String("name", name),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
