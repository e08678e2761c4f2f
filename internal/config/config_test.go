package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFS map[string]string

func (m memFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func TestDefaults(t *testing.T) {
	c := New(WithEnvPrefix(""))
	require.NoError(t, c.Load(context.Background()))

	s := c.Settings()
	assert.True(t, s.AddMouseCursors())
	assert.False(t, s.KeepFirstEntry())
	assert.False(t, s.MatchCase())
	assert.False(t, s.WholeWord())
	assert.Equal(t, 4, s.Editor.TabSize)
	assert.Equal(t, "info", s.Logging.Level)
	assert.Empty(t, s.Commands)
}

func TestLoadTOMLFile(t *testing.T) {
	fsys := memFS{"/s.toml": `
[selection]
addMouseCursors = false
keepFirstEntry = true

[search]
wholeWord = true

[editor]
tabSize = 2

[commands]
"editor.duplicateLine" = "adopt"
`}
	c := New(WithPath("/s.toml"), WithFileSystem(fsys), WithEnvPrefix(""))
	require.NoError(t, c.Load(context.Background()))

	s := c.Settings()
	assert.False(t, s.AddMouseCursors())
	assert.True(t, s.KeepFirstEntry())
	assert.True(t, s.WholeWord())
	assert.False(t, s.MatchCase(), "unset keys keep their default")
	assert.Equal(t, 2, s.Editor.TabSize)
	assert.Equal(t, map[string]string{"editor.duplicateLine": "adopt"}, s.Commands)
}

func TestLoadYAMLFile(t *testing.T) {
	fsys := memFS{"/s.yaml": "search:\n  matchCase: true\nlogging:\n  level: debug\n"}
	c := New(WithPath("/s.yaml"), WithFileSystem(fsys), WithEnvPrefix(""))
	require.NoError(t, c.Load(context.Background()))

	s := c.Settings()
	assert.True(t, s.MatchCase())
	assert.Equal(t, "debug", s.Logging.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("MCCFGTEST_EDITOR_TAB_SIZE", "3")

	fsys := memFS{"/s.toml": "[search]\nmatchCase = true\n[editor]\ntabSize = 8\n"}
	c := New(WithPath("/s.toml"), WithFileSystem(fsys), WithEnvPrefix("MCCFGTEST_"))
	require.NoError(t, c.Load(context.Background()))

	s := c.Settings()
	assert.Equal(t, 3, s.Editor.TabSize)
	v, err := c.Get("editor.tabSize")
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	c := New(WithPath("/absent.toml"), WithFileSystem(memFS{}), WithEnvPrefix(""))
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, Default().Editor, c.Settings().Editor)
}

func TestInvalidSettingsKeepPrevious(t *testing.T) {
	fsys := memFS{"/s.toml": "[editor]\ntabSize = 6\n"}
	c := New(WithPath("/s.toml"), WithFileSystem(fsys), WithEnvPrefix(""))
	require.NoError(t, c.Load(context.Background()))

	fsys["/s.toml"] = "[search]\nmatchCase = \"sometimes\"\n"
	err := c.Load(context.Background())
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "search.matchCase", te.Path)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	assert.Equal(t, 6, c.Settings().Editor.TabSize, "failed load keeps previous settings")
}

func TestTabSizeRange(t *testing.T) {
	fsys := memFS{"/s.toml": "[editor]\ntabSize = 0\n"}
	c := New(WithPath("/s.toml"), WithFileSystem(fsys), WithEnvPrefix(""))
	assert.ErrorIs(t, c.Load(context.Background()), ErrInvalidValue)
}

func TestCommandsMustBeStrings(t *testing.T) {
	fsys := memFS{"/s.toml": "[commands]\n\"editor.x\" = 3\n"}
	c := New(WithPath("/s.toml"), WithFileSystem(fsys), WithEnvPrefix(""))
	assert.ErrorIs(t, c.Load(context.Background()), ErrTypeMismatch)
}

func TestGetMissing(t *testing.T) {
	c := New()
	_, err := c.Get("editor.nope")
	assert.ErrorIs(t, err, ErrSettingNotFound)
	_, err = c.Get("editor.tabSize.deeper")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestSettingsReturnsCopy(t *testing.T) {
	fsys := memFS{"/s.toml": "[commands]\n\"a\" = \"move\"\n"}
	c := New(WithPath("/s.toml"), WithFileSystem(fsys), WithEnvPrefix(""))
	require.NoError(t, c.Load(context.Background()))

	s := c.Settings()
	s.Commands["a"] = "extend"
	assert.Equal(t, "move", c.Settings().Commands["a"])
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, New().Load(ctx), context.Canceled)
}

func TestWatcherNoPath(t *testing.T) {
	w := NewWatcher(New(), 0, nil)
	assert.ErrorIs(t, w.Run(context.Background()), ErrNoPath)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\ntabSize = 4\n"), 0o644))

	c := New(WithPath(path), WithEnvPrefix(""))
	require.NoError(t, c.Load(context.Background()))

	var (
		mu      sync.Mutex
		reloads []Settings
	)
	changed := make(chan struct{}, 8)
	w := NewWatcher(c, 20*time.Millisecond, func(s Settings, err error) {
		if err != nil {
			return
		}
		mu.Lock()
		reloads = append(reloads, s)
		mu.Unlock()
		changed <- struct{}{}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[editor]\ntabSize = 8\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
	assert.Equal(t, 8, c.Settings().Editor.TabSize)

	cancel()
	assert.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, reloads)
	assert.Equal(t, 8, reloads[len(reloads)-1].Editor.TabSize)
}
