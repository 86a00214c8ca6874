package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x3t/openapi-diff/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.level))
			assert.Equal(t, tt.want, logging.NewWithWriter(&bytes.Buffer{}, tt.level).GetLevel())
		})
	}
}

func TestAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := logging.NewAdapter(logging.NewWithWriter(&buf, "debug"))

	adapter.With(logging.FieldFormat, "json").Debug("writing report", logging.FieldPath, "build/out.json")
	adapter.Info("comparison complete", "changes", 3)
	adapter.Warn("report failed")
	adapter.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "writing report")
	assert.Contains(t, out, "format=json")
	assert.Contains(t, out, "path=build/out.json")
	assert.Contains(t, out, "changes=3")
	assert.Contains(t, out, "report failed")
	assert.Contains(t, out, "boom")
}

func TestAdapterLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	adapter := logging.NewAdapter(logging.NewWithWriter(&buf, "warn"))

	adapter.Debug("hidden")
	adapter.Info("hidden too")
	assert.Empty(t, buf.String())

	adapter.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNilAdapter(t *testing.T) {
	adapter := logging.NewAdapter(nil)
	require.NotNil(t, adapter)
	adapter.Info("discarded")
}

func TestContext(t *testing.T) {
	logger := logging.NewWithWriter(&bytes.Buffer{}, "error")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}
