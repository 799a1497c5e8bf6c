package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, slog.LevelWarn)

	log.Info("period_reconciled", "period", "2026-01")
	assert.Zero(t, buf.Len(), "records below the level are dropped")

	log.Warn("discrepancy_detected", "period", "2026-01")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "discrepancy_detected", entry["msg"])
	assert.Equal(t, "2026-01", entry["period"])
}
