package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "info", FormatJSON)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("variant created", zap.String("variant_id", "v1"))
	require.NoError(t, logger.Sync())

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "variant created", line["msg"])
	assert.Equal(t, "v1", line["variant_id"])
	assert.Contains(t, line, "timestamp")
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(&buf, "DEBUG", FormatConsole)
	require.NoError(t, err)

	logger.Debug("rendering")
	assert.Contains(t, buf.String(), "rendering")
}

func TestNewWithWriter_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"bad level", "loud", FormatJSON},
		{"bad format", "info", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithWriter(&bytes.Buffer{}, tt.level, tt.format)
			assert.Error(t, err)
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
