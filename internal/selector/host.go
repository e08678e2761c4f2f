package selector

import (
	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine/cursor"
	"github.com/dshills/multicursor/internal/search"
)

// ByteOffset is a byte position in the view's text.
type ByteOffset = cursor.ByteOffset

// Range is a half-open byte range.
type Range = cursor.Range

// Command is a named view command.
type Command = handler.Command

// Result is the outcome of a command.
type Result = handler.Result

// FindOptions configure an occurrence search.
type FindOptions = search.Options

// View is the single-cursor editor the selector drives.
type View interface {
	cursor.Resolver
	cursor.LineSource

	// Version returns the reiterated undo version: it returns to an earlier
	// value when an edit is undone.
	Version() int
	// Len returns the text length in bytes.
	Len() ByteOffset
	// LineCount returns the number of lines.
	LineCount() uint32
	// TabSize returns the tab stop width.
	TabSize() int

	// Caret returns the caret offset and its virtual spaces past the line end.
	Caret() (ByteOffset, int)
	// MoveCaret places the caret and collapses the selection.
	MoveCaret(offset ByteOffset, virtual int)
	// Selection returns the selected range and whether the caret is at its
	// start.
	Selection() (Range, bool)
	// Select selects r with the caret at r.End, or r.Start when reversed.
	Select(r Range, reversed bool)
	// ClearSelection collapses the selection onto the caret.
	ClearSelection()
	// SelectCurrentWord selects the word at the caret.
	SelectCurrentWord()
	// InsertText replaces the selection, or inserts at the caret.
	InsertText(text string)
	// EnsureVisible scrolls offset into view.
	EnsureVisible(offset ByteOffset)

	// Exec runs a command once against the real caret.
	Exec(cmd Command) Result
}

// Searcher finds occurrences in the view's text.
type Searcher interface {
	// FindNext returns the next match from offset in the direction given by
	// opts.Reverse, wrapping around the text when wrap is set.
	FindNext(from ByteOffset, wrap bool, pattern string, opts FindOptions) (Range, bool)
	// FindAll returns every match in text order.
	FindAll(pattern string, opts FindOptions) []Range
}

// Outliner expands folded regions.
type Outliner interface {
	// ExpandCollapsed unfolds every collapsed region intersecting r.
	ExpandCollapsed(r Range)
}

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// UndoHost groups the view's edits into single undo steps.
type UndoHost interface {
	BeginGroup(label string)
	EndGroup()
	IsGrouping() bool
}

// Settings are the user options the selector reads.
type Settings interface {
	AddMouseCursors() bool
	KeepFirstEntry() bool
	MatchCase() bool
	WholeWord() bool
}

type defaultSettings struct{}

func (defaultSettings) AddMouseCursors() bool { return true }
func (defaultSettings) KeepFirstEntry() bool  { return false }
func (defaultSettings) MatchCase() bool       { return false }
func (defaultSettings) WholeWord() bool       { return false }
