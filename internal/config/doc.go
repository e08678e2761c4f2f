// Package config loads the multi-cursor settings.
//
// Settings come from three sources, each overriding the one before:
//
//  1. Built-in defaults (see Default)
//  2. A settings file, TOML or YAML depending on its extension
//  3. Environment variables prefixed with MULTICURSOR_
//
// The merged result is decoded into a Settings value. Settings satisfies the
// selector's settings interface so it can be handed to a Selector directly.
//
// # File Format
//
//	[selection]
//	addMouseCursors = true
//	keepFirstEntry = false
//
//	[search]
//	matchCase = false
//	wholeWord = false
//
//	[editor]
//	tabSize = 4
//	virtualSpace = false
//
//	[logging]
//	level = "info"
//
//	[commands]
//	"editor.duplicateLine" = "adopt"
//
// # Hot Reload
//
// Watcher observes the settings file with fsnotify and reloads the Config
// after writes settle, reporting each result to a callback.
package config
