package config

import (
	"fmt"
	"strings"
)

// Settings is the decoded configuration.
type Settings struct {
	Selection SelectionSettings `yaml:"selection"`
	Search    SearchSettings    `yaml:"search"`
	Editor    EditorSettings    `yaml:"editor"`
	Logging   LoggingSettings   `yaml:"logging"`

	// Commands overrides how host commands are replayed, keyed by command
	// name with a behavior name as value.
	Commands map[string]string `yaml:"commands"`
}

// SelectionSettings controls how units are created and dropped.
type SelectionSettings struct {
	// AddMouseCursors enables Alt+click to add a cursor.
	AddMouseCursors bool `yaml:"addMouseCursors"`
	// KeepFirstEntry leaves the caret on the first unit when cancelling.
	KeepFirstEntry bool `yaml:"keepFirstEntry"`
}

// SearchSettings are the default options for occurrence search.
type SearchSettings struct {
	MatchCase bool `yaml:"matchCase"`
	WholeWord bool `yaml:"wholeWord"`
}

// EditorSettings configure the reference host.
type EditorSettings struct {
	TabSize      int  `yaml:"tabSize"`
	VirtualSpace bool `yaml:"virtualSpace"`
}

// LoggingSettings configure the diagnostic log.
type LoggingSettings struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Selection: SelectionSettings{AddMouseCursors: true},
		Editor:    EditorSettings{TabSize: 4},
		Logging:   LoggingSettings{Level: "info"},
		Commands:  map[string]string{},
	}
}

// AddMouseCursors reports whether Alt+click adds cursors.
func (s Settings) AddMouseCursors() bool { return s.Selection.AddMouseCursors }

// KeepFirstEntry reports whether cancelling keeps the first unit's caret.
func (s Settings) KeepFirstEntry() bool { return s.Selection.KeepFirstEntry }

// MatchCase reports whether occurrence search is case sensitive.
func (s Settings) MatchCase() bool { return s.Search.MatchCase }

// WholeWord reports whether occurrence search matches whole words only.
func (s Settings) WholeWord() bool { return s.Search.WholeWord }

// defaultMap returns the defaults in the loaders' map shape.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"selection": map[string]any{
			"addMouseCursors": d.Selection.AddMouseCursors,
			"keepFirstEntry":  d.Selection.KeepFirstEntry,
		},
		"search": map[string]any{
			"matchCase": d.Search.MatchCase,
			"wholeWord": d.Search.WholeWord,
		},
		"editor": map[string]any{
			"tabSize":      int64(d.Editor.TabSize),
			"virtualSpace": d.Editor.VirtualSpace,
		},
		"logging": map[string]any{
			"level": d.Logging.Level,
		},
		"commands": map[string]any{},
	}
}

// decode builds Settings from a merged configuration map.
func decode(data map[string]any) (Settings, error) {
	var (
		s   = Default()
		err error
	)

	if s.Selection.AddMouseCursors, err = getBool(data, "selection.addMouseCursors"); err != nil {
		return s, err
	}
	if s.Selection.KeepFirstEntry, err = getBool(data, "selection.keepFirstEntry"); err != nil {
		return s, err
	}
	if s.Search.MatchCase, err = getBool(data, "search.matchCase"); err != nil {
		return s, err
	}
	if s.Search.WholeWord, err = getBool(data, "search.wholeWord"); err != nil {
		return s, err
	}
	if s.Editor.VirtualSpace, err = getBool(data, "editor.virtualSpace"); err != nil {
		return s, err
	}
	if s.Editor.TabSize, err = getInt(data, "editor.tabSize"); err != nil {
		return s, err
	}
	if s.Editor.TabSize < 1 || s.Editor.TabSize > 16 {
		return s, fmt.Errorf("editor.tabSize %d: %w", s.Editor.TabSize, ErrInvalidValue)
	}
	if s.Logging.Level, err = getString(data, "logging.level"); err != nil {
		return s, err
	}

	cmds, ok := data["commands"].(map[string]any)
	if !ok && data["commands"] != nil {
		return s, &TypeError{Path: "commands", Expected: "table", Actual: typeName(data["commands"])}
	}
	for name, v := range cmds {
		behavior, ok := v.(string)
		if !ok {
			return s, &TypeError{Path: "commands." + name, Expected: "string", Actual: typeName(v)}
		}
		s.Commands[name] = behavior
	}
	return s, nil
}

// lookup walks a dot-separated path through nested maps.
func lookup(data map[string]any, path string) (any, error) {
	parts := strings.Split(path, ".")
	var cur any = data
	for _, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrSettingNotFound)
		}
		if cur, ok = m[part]; !ok {
			return nil, fmt.Errorf("%s: %w", path, ErrSettingNotFound)
		}
	}
	return cur, nil
}

func getBool(data map[string]any, path string) (bool, error) {
	v, err := lookup(data, path)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

func getInt(data map[string]any, path string) (int, error) {
	v, err := lookup(data, path)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	case bool:
		// The environment loader reads "1" as true.
		if n {
			return 1, nil
		}
		return 0, nil
	}
	return 0, &TypeError{Path: path, Expected: "integer", Actual: typeName(v)}
}

func getString(data map[string]any, path string) (string, error) {
	v, err := lookup(data, path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
