package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"info":  slog.LevelInfo,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	}
	for input, want := range cases {
		assert.Equalf(t, want, ParseLevel(input), "ParseLevel(%q)", input)
	}
}

func TestIntoFrom_RoundTrips(t *testing.T) {
	logger := New(slog.LevelDebug)
	ctx := Into(context.Background(), logger)
	got := From(ctx)
	assert.Same(t, logger, got, "expected From to return the logger attached by Into")
}

func TestFrom_DefaultsWhenAbsent(t *testing.T) {
	got := From(context.Background())
	assert.NotNil(t, got, "expected a non-nil default logger")
}
