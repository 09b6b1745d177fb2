package hwt

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tree := New(WithLeafThreshold(1), WithLogger(logger))
	tree.Insert(FeatureFrom64(1))
	tree.Insert(FeatureFrom64(3))
	tree.NearestNeighbors(FeatureFrom64(1), 1)

	out := buf.String()
	require.Contains(t, out, "tree created")
	require.Contains(t, out, `"leaf_threshold":1`)
	require.Contains(t, out, "leaf converted")
	require.Contains(t, out, `"children":2`)
	require.Contains(t, out, "nearest completed")
	require.Contains(t, out, `"results":1`)
	// Traversal events are below debug.
	require.NotContains(t, out, "nearest leaf")
}

func TestTraceLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	tree := New(WithLeafThreshold(1), WithLogger(logger))
	tree.Insert(FeatureFrom64(1))
	tree.Insert(FeatureFrom64(3))
	tree.NearestNeighbors(FeatureFrom64(1), 2)
	tree.CountRadius(1, FeatureFrom64(1))

	out := buf.String()
	assert.Contains(t, out, "nearest emptying root")
	assert.Contains(t, out, "nearest leaf")
	assert.Contains(t, out, `"k":2`)
	assert.Contains(t, out, "radius scan")
	assert.Contains(t, out, `"radius":1`)
}

func TestLogBatch(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	logger.LogBatch(ctx, 4, 2, nil)
	assert.Contains(t, buf.String(), "nearest batch completed")

	buf.Reset()
	logger.LogBatch(ctx, 4, 2, errors.New("boom"))
	assert.Contains(t, buf.String(), "nearest batch failed")
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestLoggerConstructors(t *testing.T) {
	assert.NotNil(t, NewLogger(nil))
	assert.True(t, NewJSONLogger(LevelTrace).tracing(context.Background()))
	assert.False(t, NewTextLogger(slog.LevelInfo).tracing(context.Background()))
	assert.False(t, NoopLogger().Enabled(context.Background(), slog.LevelError))

	tree := New(WithLogger(nil))
	assert.NotNil(t, tree.opts.logger)
}
