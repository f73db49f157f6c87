package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/verton/internal/config"
)

func TestNewLogger_HonoursLevel(t *testing.T) {
	for _, level := range config.LogLevels {
		t.Run(level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(config.Log{Format: "text", Level: level}, &buf)

			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")
			logger.Error("e")

			lines := bytes.Count(buf.Bytes(), []byte("\n"))
			want := map[string]int{"debug": 4, "info": 3, "warn": 2, "error": 1}[level]
			assert.Equal(t, want, lines, buf.String())
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.Log{Format: "json", Level: "info"}, &buf)

	logger.Info("Graph loaded.", "vertexes", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Graph loaded.", record["msg"])
	assert.EqualValues(t, 3, record["vertexes"])
}

func TestNewLogger_UnknownValuesFallBack(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(config.Log{Format: "xml", Level: "loud"}, &buf)

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}
