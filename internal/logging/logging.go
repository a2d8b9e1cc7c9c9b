// Package logging provides the structured logger threaded through the
// worker pool and engine. No structured
// logging library appears anywhere in the retrieved example pack, so this
// wraps the standard library's log/slog rather than inventing a
// dependency the corpus never reaches for.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// New builds a JSON structured logger at the given minimum level,
// suitable for passing into a worker pool or engine so that logging stays
// an explicit dependency rather than a global sink.
func New(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// ParseLevel maps the config package's string level onto a slog.Level,
// defaulting to Info for unrecognized input.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithScenario returns a logger with scenarioId bound as a standing field,
// so lines can be correlated across the lifecycle of a single
// optimization run.
func WithScenario(logger *slog.Logger, scenarioID string) *slog.Logger {
	return logger.With("scenarioId", scenarioID)
}

// contextKey is unexported to keep the context key space private to this
// package, per the standard library's own guidance on context keys.
type contextKey struct{}

var loggerKey = contextKey{}

// Into attaches logger to ctx so deeply nested calls can retrieve it
// without threading an explicit parameter through every signature.
func Into(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// From retrieves the logger attached by Into, or slog.Default() if none
// was attached.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
