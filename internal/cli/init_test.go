package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ynabviz/internal/config"
)

func TestSetupLoggerJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger(&config.Config{LogLevel: "warn", LogFormat: "json"}, &buf)

	logger.Info("dropped")
	logger.Warn("kept", "budget_id", "b1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "app", entry["component"])
	assert.Equal(t, "b1", entry["budget_id"])
}

func TestLoadAndValidateConfigRejectsBadSink(t *testing.T) {
	t.Setenv("SINK", "ftp")
	_, err := LoadAndValidateConfig()
	assert.ErrorContains(t, err, "invalid configuration")
}
