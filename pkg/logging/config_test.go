package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestParseTimeFormat(t *testing.T) {
	assert.Equal(t, time.Kitchen, parseTimeFormat(""))
	assert.Equal(t, time.RFC3339, parseTimeFormat("rfc3339"))
	assert.Equal(t, "", parseTimeFormat("unix"))
	assert.Equal(t, "2006-01-02", parseTimeFormat("2006-01-02"))
	assert.Equal(t, time.Kitchen, parseTimeFormat("nonsense"))
}

func TestNewLoggerFromConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memo.log")

	logger := NewLoggerFromConfig(&Config{
		Level:  "warn",
		Format: "json",
		Output: path,
	})
	logger.Info().Msg("hidden")
	logger.Warn().Str("file", "cat.png").Msg("visible")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"file":"cat.png"`)
}

func TestNewLoggerFromConfig_Discard(t *testing.T) {
	logger := NewLoggerFromConfig(&Config{Level: "debug", Output: "discard"})
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestTestLogger(t *testing.T) {
	tl := NewTestLogger(t)
	assert.Empty(t, tl.Lines())

	tl.Info().Msg("one")
	tl.Debug().Msg("two")

	assert.Len(t, tl.Lines(), 2)
	assert.True(t, tl.Contains("two"))
}
