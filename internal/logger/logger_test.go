package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlprog/taskboard/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("task created", "task_id", "t1")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task created", entry["msg"])
	assert.Equal(t, "t1", entry["task_id"])
	assert.Equal(t, "taskboard", entry["service"])
	assert.Contains(t, entry, "source")
}
