package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"testing"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

type brokenFS struct{}

func (brokenFS) ReadFile(string) ([]byte, error) { return nil, fs.ErrPermission }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/settings.toml", `
[selection]
keepFirstEntry = true

[editor]
tabSize = 8

[commands]
"editor.duplicateLine" = "adopt"
`)

	data, err := NewTOMLLoaderWithFS(memfs, "/settings.toml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	sel, ok := data["selection"].(map[string]any)
	if !ok {
		t.Fatalf("selection section missing: %v", data)
	}
	if sel["keepFirstEntry"] != true {
		t.Errorf("keepFirstEntry = %v, want true", sel["keepFirstEntry"])
	}
	editor := data["editor"].(map[string]any)
	if editor["tabSize"] != int64(8) {
		t.Errorf("tabSize = %#v, want int64(8)", editor["tabSize"])
	}
	cmds := data["commands"].(map[string]any)
	if cmds["editor.duplicateLine"] != "adopt" {
		t.Errorf("commands = %v", cmds)
	}
}

func TestTOMLLoader_MissingFile(t *testing.T) {
	data, err := NewTOMLLoaderWithFS(NewMemFS(), "/none.toml").Load()
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if data != nil {
		t.Errorf("expected nil data, got %v", data)
	}
}

func TestTOMLLoader_ReadError(t *testing.T) {
	_, err := NewTOMLLoaderWithFS(brokenFS{}, "/x.toml").Load()
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("expected wrapped permission error, got %v", err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[editor]\ntabSize = = 4\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Path != "/bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
	if pe.Line != 2 {
		t.Errorf("Line = %d, want 2", pe.Line)
	}
}

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/settings.yaml", `
search:
  matchCase: true
editor:
  tabSize: 2
commands:
  editor.duplicateLine: adopt
`)

	data, err := NewYAMLLoaderWithFS(memfs, "/settings.yaml").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	search := data["search"].(map[string]any)
	if search["matchCase"] != true {
		t.Errorf("matchCase = %v", search["matchCase"])
	}
	editor := data["editor"].(map[string]any)
	if editor["tabSize"] != 2 {
		t.Errorf("tabSize = %#v, want 2", editor["tabSize"])
	}
	if _, ok := data["commands"].(map[string]any); !ok {
		t.Errorf("commands not normalised to map[string]any: %T", data["commands"])
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yml", "search:\n  matchCase: true\n bad: [\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if pe.Line == 0 {
		t.Errorf("expected a line number in %v", pe)
	}
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.toml", "*loader.TOMLLoader"},
		{"a.yaml", "*loader.YAMLLoader"},
		{"a.YML", "*loader.YAMLLoader"},
		{"settings", "*loader.TOMLLoader"},
	}
	for _, tt := range tests {
		got := reflect.TypeOf(ForFile(NewMemFS(), tt.path)).String()
		if got != tt.want {
			t.Errorf("ForFile(%q) = %s, want %s", tt.path, got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"editor": map[string]any{"tabSize": 4, "virtualSpace": false},
		"keep":   "me",
	}
	src := map[string]any{
		"editor": map[string]any{"tabSize": 2},
		"new":    true,
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"editor": map[string]any{"tabSize": 2, "virtualSpace": false},
		"keep":   "me",
		"new":    true,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge() = %v, want %v", got, want)
	}

	if DeepMerge(nil, src) == nil {
		t.Error("DeepMerge(nil, src) returned nil")
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{"editor": map[string]any{"tabSize": 4}}
	c := Clone(src)
	c["editor"].(map[string]any)["tabSize"] = 8

	if src["editor"].(map[string]any)["tabSize"] != 4 {
		t.Error("Clone shares nested maps")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
