package loader

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// shortNames are variable names, without the prefix, that map to a setting
// outside the SECTION_KEY scheme.
var shortNames = map[string]string{
	"LOG_LEVEL":         "logging.level",
	"TAB_SIZE":          "editor.tabSize",
	"VIRTUAL_SPACE":     "editor.virtualSpace",
	"MATCH_CASE":        "search.matchCase",
	"WHOLE_WORD":        "search.wholeWord",
	"ADD_MOUSE_CURSORS": "selection.addMouseCursors",
	"KEEP_FIRST_ENTRY":  "selection.keepFirstEntry",
}

// EnvLoader reads settings from prefixed environment variables.
type EnvLoader struct {
	prefix string
	short  map[string]string
}

// NewEnvLoader creates a loader for variables starting with prefix, which
// should include the trailing underscore (e.g. "MULTICURSOR_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, short: shortNames}
}

// Load returns the settings found in the environment as a nested map.
// An empty value is a value, not an unset variable.
func (l *EnvLoader) Load() (map[string]any, error) {
	data := make(map[string]any)
	if l.prefix == "" {
		return data, nil
	}

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		setByPath(data, l.envToPath(name), parseValue(value))
	}
	return data, nil
}

// envToPath converts MULTICURSOR_EDITOR_TAB_SIZE to editor.tabSize: the
// first word names the section, the rest form a camelCase key. Short
// names such as MULTICURSOR_TAB_SIZE are looked up first.
func (l *EnvLoader) envToPath(env string) string {
	rest := strings.TrimPrefix(env, l.prefix)
	if path, ok := l.short[rest]; ok {
		return path
	}

	parts := strings.Split(rest, "_")
	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	var key strings.Builder
	key.WriteString(strings.ToLower(parts[1]))
	for _, part := range parts[2:] {
		if part == "" {
			continue
		}
		key.WriteString(strings.ToUpper(part[:1]))
		key.WriteString(strings.ToLower(part[1:]))
	}
	return section + "." + key.String()
}

// parseValue turns a variable's text into a bool, number, list, map or
// string, in that order of preference.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "":
		return s
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	// Inline YAML, which also covers JSON.
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := yaml.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
