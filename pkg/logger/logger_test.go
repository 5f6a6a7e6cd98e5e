package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/hydrate/pkg/logger"
)

type ctxKey struct{}

func traceExtractor(ctx context.Context) (slog.Attr, bool) {
	v, ok := ctx.Value(ctxKey{}).(string)
	if !ok {
		return slog.Attr{}, false
	}
	return slog.String("trace", v), true
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("adds extracted attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithExtractors(traceExtractor, nil))

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
		log.With("component", "test").InfoContext(ctx, "hello")

		m := decode(t, &buf)
		require.Equal(t, "hello", m["msg"])
		require.Equal(t, "abc", m["trace"])
		require.Equal(t, "test", m["component"])
	})

	t.Run("skips missing values", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger.New(logger.WithOutput(&buf), logger.WithExtractors(traceExtractor)).Info("hello")

		require.NotContains(t, decode(t, &buf), "trace")
	})

	t.Run("respects level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		require.Zero(t, buf.Len())

		log.Warn("kept")
		require.Equal(t, "kept", decode(t, &buf)["msg"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger.New(logger.WithOutput(&buf), logger.WithTextFormat()).Info("hello", "k", "v")
		require.Contains(t, buf.String(), "msg=hello k=v")
	})
}

func TestNewWithSentry_NoDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, flush := logger.NewWithSentry(logger.SentryConfig{}, logger.WithOutput(&buf))
	log.Error("boom")

	require.Equal(t, "boom", decode(t, &buf)["msg"])
	require.True(t, flush(0))
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.False(t, log.Enabled(context.Background(), slog.LevelError))
}
