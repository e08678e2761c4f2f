package engine

import (
	"github.com/dshills/multicursor/internal/engine/buffer"
	"github.com/dshills/multicursor/internal/selector"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
	DefaultMaxChanges     = 10000
	DefaultPageLines      = 20
	DefaultCommentPrefix  = "//"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithLineEnding sets the line ending style for the engine.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = ending
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithMaxChanges sets the maximum number of tracked changes.
func WithMaxChanges(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxChanges = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edit commands will fail with ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithVirtualSpace lets the caret move past the end of a line.
func WithVirtualSpace(enabled bool) Option {
	return func(e *Engine) {
		e.virtualSpace = enabled
	}
}

// WithPageLines sets how many lines a page motion moves.
func WithPageLines(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pageLines = n
		}
	}
}

// WithCommentPrefix sets the line comment marker used by toggleComment.
func WithCommentPrefix(prefix string) Option {
	return func(e *Engine) {
		if prefix != "" {
			e.commentPrefix = prefix
		}
	}
}

// WithClipboard sets the clipboard used by copy, cut and paste. The default
// is an in-memory clipboard.
func WithClipboard(c selector.Clipboard) Option {
	return func(e *Engine) {
		if c != nil {
			e.clip = c
		}
	}
}

// WithSettings sets the multi-cursor options.
func WithSettings(s selector.Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// WithCommandTable sets how commands are replayed across cursors.
func WithCommandTable(t *selector.CommandTable) Option {
	return func(e *Engine) {
		e.commands = t
	}
}
