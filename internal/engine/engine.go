package engine

import (
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/multicursor/internal/clipboard"
	"github.com/dshills/multicursor/internal/dispatcher"
	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine/buffer"
	"github.com/dshills/multicursor/internal/engine/cursor"
	"github.com/dshills/multicursor/internal/engine/history"
	"github.com/dshills/multicursor/internal/engine/tracking"
	"github.com/dshills/multicursor/internal/log"
	"github.com/dshills/multicursor/internal/search"
	"github.com/dshills/multicursor/internal/selector"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Selection represents the real caret and its selection.
	Selection = cursor.Selection

	// Position is an offset bound to a buffer revision.
	Position = tracking.Position

	// Command is a named editor command.
	Command = handler.Command

	// Result is the outcome of a command.
	Result = handler.Result
)

// Engine is a single-cursor editor view over one buffer, with a Selector
// layered on top for multiple cursors.
//
// Commands sent through Execute are replayed across the simulated cursors;
// Exec runs a command once against the real caret. Reads are safe from any
// goroutine; commands must come from one goroutine at a time.
type Engine struct {
	mu sync.RWMutex

	id uuid.UUID

	// Core components
	buf     *buffer.Buffer
	tracker *tracking.Tracker
	history *history.History
	disp    *dispatcher.Dispatcher
	multi   *selector.Selector
	clip    selector.Clipboard

	// Real caret
	sel        Selection
	virtual    int
	goalColumn int

	// View state
	wordWrap       bool
	showWhitespace bool
	overtype       bool
	topLine        uint32
	folds          []Range

	// Configuration
	tabWidth       int
	lineEnding     buffer.LineEnding
	maxUndoEntries int
	maxChanges     int
	pageLines      int
	commentPrefix  string
	virtualSpace   bool
	readOnly       bool
	settings       selector.Settings
	commands       *selector.CommandTable

	// Initialization
	initContent string
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions()...)
	e.init()
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)
	buf, err := buffer.NewBufferFromReader(r, e.bufferOptions()...)
	if err != nil {
		return nil, err
	}
	e.buf = buf
	e.init()
	return e, nil
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		id:             uuid.New(),
		tabWidth:       DefaultTabWidth,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
		maxChanges:     DefaultMaxChanges,
		pageLines:      DefaultPageLines,
		commentPrefix:  DefaultCommentPrefix,
		goalColumn:     -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) bufferOptions() []buffer.Option {
	return []buffer.Option{
		buffer.WithTabWidth(e.tabWidth),
		buffer.WithLineEnding(e.lineEnding),
	}
}

func (e *Engine) init() {
	e.tracker = tracking.NewTracker(tracking.WithMaxChanges(e.maxChanges))
	e.history = history.NewHistory(e.maxUndoEntries)
	if e.clip == nil {
		e.clip = clipboard.NewMemory()
	}

	e.disp = dispatcher.New()
	e.registerCommands()
	e.disp.OnDispatch(func(cmd handler.Command, res handler.Result) {
		if res.IsError() {
			log.ErrorErr(log.CatHost, "command failed", res.Error, "view", e.id, "command", cmd.Name)
			return
		}
		log.Debug(log.CatHost, "command", "view", e.id, "command", cmd.Name, "status", res.Status)
	})

	opts := []selector.Option{
		selector.WithSearcher(search.New(e.buf)),
		selector.WithOutliner(e),
		selector.WithClipboard(e.clip),
		selector.WithUndoHost(e),
		selector.WithSettings(e.settings),
		selector.WithCommandTable(e.commands),
	}
	e.multi = selector.New(view{e}, opts...)
}

// ID returns the view's unique identifier.
func (e *Engine) ID() string {
	return e.id.String()
}

// Selector returns the multi-cursor layer.
func (e *Engine) Selector() *selector.Selector {
	return e.multi
}

// Clipboard returns the clipboard used by copy and paste.
func (e *Engine) Clipboard() selector.Clipboard {
	return e.clip
}

// Execute runs cmd through the multi-cursor layer.
func (e *Engine) Execute(cmd Command) Result {
	return e.multi.Execute(cmd)
}

// Do executes the named command through the multi-cursor layer.
func (e *Engine) Do(name string) Result {
	return e.Execute(Command{Name: name})
}

// Type inserts text at every cursor.
func (e *Engine) Type(text string) Result {
	return e.Execute(Command{Name: CmdInsertText, Text: text})
}

// Exec runs cmd once against the real caret.
func (e *Engine) Exec(cmd Command) Result {
	return e.disp.Dispatch(cmd)
}

// CanExec reports whether the view has a handler for the command.
func (e *Engine) CanExec(name string) bool {
	return e.disp.CanDispatch(name)
}

// Click simulates a left click at offset, with or without Alt held.
func (e *Engine) Click(offset ByteOffset, alt bool) {
	e.multi.MouseDown(alt)
	e.MoveCaret(offset, 0)
	e.multi.MouseUp(alt)
}

// ============================================================================
// Text access
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	return e.buf.Text()
}

// TextRange returns the text in [start, end).
func (e *Engine) TextRange(start, end ByteOffset) string {
	return e.buf.TextRange(start, end)
}

// Len returns the buffer length in bytes.
func (e *Engine) Len() ByteOffset {
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 {
	return e.buf.LineCount()
}

// LineText returns the text of a line without its line break.
func (e *Engine) LineText(line uint32) string {
	return e.buf.LineText(line)
}

// LineOf returns the line containing offset.
func (e *Engine) LineOf(offset ByteOffset) uint32 {
	return e.buf.LineOf(offset)
}

// LineRange returns a line's byte range without its line break.
func (e *Engine) LineRange(line uint32) Range {
	return Range{Start: e.buf.LineStartOffset(line), End: e.buf.LineEndOffset(line)}
}

// TabSize returns the tab stop width.
func (e *Engine) TabSize() int {
	return e.buf.TabWidth()
}

// RevisionID returns the buffer's current revision.
func (e *Engine) RevisionID() buffer.RevisionID {
	return e.buf.RevisionID()
}

// ============================================================================
// Position tracking
// ============================================================================

// Track creates a position for offset in the current revision.
func (e *Engine) Track(offset ByteOffset) Position {
	return e.tracker.Track(offset, e.buf.RevisionID())
}

// Resolve returns the current offset of a tracked position.
func (e *Engine) Resolve(pos Position) ByteOffset {
	offset, ok := e.tracker.Resolve(pos)
	if !ok {
		log.Warn(log.CatHost, "position older than tracked history", "view", e.id, "position", pos)
	}
	return max(0, min(offset, e.buf.Len()))
}

// ============================================================================
// Undo
// ============================================================================

// Version returns the reiterated undo version.
func (e *Engine) Version() int {
	return e.history.Version()
}

// BeginGroup starts grouping edits into one undo step.
func (e *Engine) BeginGroup(label string) {
	e.history.BeginGroup(label)
}

// EndGroup closes the innermost undo group.
func (e *Engine) EndGroup() {
	e.history.EndGroup()
}

// IsGrouping reports whether an undo group is open.
func (e *Engine) IsGrouping() bool {
	return e.history.IsGrouping()
}

// CanUndo reports whether there is anything to undo.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo reports whether there is anything to redo.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// ============================================================================
// Caret and selection
// ============================================================================

// Caret returns the caret offset and its virtual spaces.
func (e *Engine) Caret() (ByteOffset, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Head, e.virtual
}

// MoveCaret places the caret and collapses the selection. Virtual spaces
// are kept only with virtual space enabled and the caret at a line end.
func (e *Engine) MoveCaret(offset ByteOffset, virtual int) {
	offset = max(0, min(offset, e.buf.Len()))
	if !e.virtualSpace || offset != e.buf.LineEndOffset(e.buf.LineOf(offset)) {
		virtual = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = cursor.NewCursorSelection(offset)
	e.virtual = max(0, virtual)
	e.goalColumn = -1
}

// Selection returns the selected range and whether the caret is at its
// start.
func (e *Engine) Selection() (Range, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel.Range(), e.sel.IsBackward()
}

// RealSelection returns the anchor and head of the real caret.
func (e *Engine) RealSelection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// Select selects r with the caret at its end, or its start when reversed.
func (e *Engine) Select(r Range, reversed bool) {
	sel := cursor.NewRangeSelection(r, reversed).Clamp(e.buf.Len())
	e.setSelection(sel)
}

// ClearSelection collapses the selection onto the caret.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = e.sel.Collapse()
}

func (e *Engine) setSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sel = sel
	e.virtual = 0
	e.goalColumn = -1
}

// InsertText replaces the selection with text, or inserts it at the caret.
func (e *Engine) InsertText(text string) {
	if err := e.insert(text, false); err != nil {
		log.ErrorErr(log.CatHost, "insert failed", err, "view", e.id)
	}
}

// SelectCurrentWord selects the word segment at the caret.
func (e *Engine) SelectCurrentWord() {
	caret, _ := e.Caret()
	if r, ok := e.wordAt(caret); ok {
		e.Select(r, false)
	}
}

// ============================================================================
// View state
// ============================================================================

// EnsureVisible scrolls so that offset's line is on screen.
func (e *Engine) EnsureVisible(offset ByteOffset) {
	line := e.buf.LineOf(offset)

	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case line < e.topLine:
		e.topLine = line
	case line >= e.topLine+uint32(e.pageLines):
		e.topLine = line - uint32(e.pageLines) + 1
	}
}

// TopLine returns the first visible line.
func (e *Engine) TopLine() uint32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.topLine
}

// WordWrap reports whether word wrap is on.
func (e *Engine) WordWrap() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.wordWrap
}

// ShowWhitespace reports whether whitespace is rendered visibly.
func (e *Engine) ShowWhitespace() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.showWhitespace
}

// Overtype reports whether typing replaces characters.
func (e *Engine) Overtype() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.overtype
}

// Fold collapses r.
func (e *Engine) Fold(r Range) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.folds = append(e.folds, r)
}

// Folds returns the collapsed regions.
func (e *Engine) Folds() []Range {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Range(nil), e.folds...)
}

// ExpandCollapsed unfolds every collapsed region intersecting r.
func (e *Engine) ExpandCollapsed(r Range) {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.folds[:0]
	for _, f := range e.folds {
		if !f.Overlaps(r) {
			kept = append(kept, f)
		}
	}
	e.folds = kept
}

// ============================================================================
// Edits
// ============================================================================

// edit applies one undoable replacement. The caret ends after the new text.
func (e *Engine) edit(r Range, text string) error {
	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Execute(history.NewEditCommand(buffer.Edit{Range: r, NewText: text}), editTarget{e})
}

// editTarget is the document seen by undo commands.
type editTarget struct{ e *Engine }

func (t editTarget) ApplyEdit(edit buffer.Edit) (buffer.Change, error) {
	change, err := t.e.buf.ApplyEdit(edit)
	if err != nil {
		return change, err
	}
	t.e.tracker.Record(t.e.buf.RevisionID(), change.ToEdit())
	return change, nil
}

func (t editTarget) Selection() Selection {
	return t.e.RealSelection()
}

func (t editTarget) SetSelection(sel Selection) {
	t.e.setSelection(sel.Clamp(t.e.buf.Len()))
}

// view adapts the engine to selector.View.
type view struct{ *Engine }

func (v view) Text(r Range) string {
	return v.buf.TextRange(r.Start, r.End)
}
