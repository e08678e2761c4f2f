package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Info(CatReplay, "replayed", "units", 3, "command", "editor.insertText")

	line := buf.String()
	assert.Contains(t, line, "[INFO] [replay] replayed units=3 command=editor.insertText")
	assert.True(t, line[len(line)-1] == '\n')
}

func TestLogMinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	SetMinLevel(LevelWarn)
	Debug(CatSearch, "hidden")
	Info(CatSearch, "hidden")
	Warn(CatSearch, "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN] [search] shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatSearch, "muted")
	assert.Empty(t, buf.String())
}

func TestErrorErrAndOrphanField(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	ErrorErr(CatHistory, "restore failed", errors.New("missing"), "version")

	assert.Contains(t, buf.String(), "restore failed version= error=missing")
}

func TestLogDisabledByDefault(t *testing.T) {
	SetOutput(nil)
	// Must not panic without a destination.
	Info(CatHost, "nowhere")
	SetEnabled(true)
	SetMinLevel(LevelDebug)
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mc.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	Warn(CatConfig, "reloaded", "path", "x.toml")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[WARN] [config] reloaded path=x.toml")

	// After cleanup logging is a no-op again.
	Info(CatConfig, "after close")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "": LevelInfo, "warning": LevelWarn, "error": LevelError}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
