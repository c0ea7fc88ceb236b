package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlog_ProductionIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlog(LogOptions{Environment: "production", Output: &buf})

	logger.Debug("hidden")
	logger.Info("visible", "test_id", "t1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "t1", entry["test_id"])
}

func TestNewSlog_LevelOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlog(LogOptions{Environment: "development", Level: "warn", Output: &buf})

	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestSlogLogger_LogRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(NewSlog(LogOptions{Format: "json", Output: &buf}))

	logger.LogRequest("GET", "/api/health", 200, "1ms")
	logger.LogRequest("POST", "/api/login", 401, "1ms")
	logger.LogRequest("POST", "/api/test/submit", 500, "1ms")
	logger.LogError(errors.New("boom"), "failed")

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"boom"`)
}
