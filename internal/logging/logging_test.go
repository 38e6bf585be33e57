package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level Level
	}{
		{"debug", LevelDebug},
		{"", LevelInfo},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"Error", LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := ParseLevel(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.level, level)
		})
	}

	_, err := ParseLevel("trace")
	require.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn, FormatJSON)

	logger.Info("dropped")
	logger.Warn("relocation", "missing", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	require.Equal(t, "relocation", record["msg"])
	require.Equal(t, "WARN", record["level"])
	require.InDelta(t, 2, record["missing"], 0)
	require.Contains(t, record, "time")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(New(&buf, LevelDebug, FormatText), "engine")

	logger.Debug("decoded", "labels", 3)
	require.Contains(t, buf.String(), "component=engine")
	require.Contains(t, buf.String(), "labels=3")
}

func TestOrDiscard(t *testing.T) {
	require.NotNil(t, OrDiscard(nil))
	require.False(t, Discard().Enabled(t.Context(), 0))

	logger := New(&bytes.Buffer{}, LevelInfo, FormatText)
	require.Same(t, logger, OrDiscard(logger))
}
