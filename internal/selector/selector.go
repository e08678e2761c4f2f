package selector

import (
	"github.com/google/uuid"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
	"github.com/dshills/multicursor/internal/engine/cursor"
	"github.com/dshills/multicursor/internal/log"
)

// Default view commands for one-line caret moves.
const (
	DefaultLineUpCommand   = "cursor.moveUp"
	DefaultLineDownCommand = "cursor.moveDown"
)

// Selector keeps the simulated cursors of one view and replays commands
// across them. It is not safe for concurrent use.
type Selector struct {
	id   string
	view View

	searcher  Searcher
	outliner  Outliner
	clipboard Clipboard
	undo      UndoHost
	settings  Settings
	commands  *CommandTable

	lineUp   string
	lineDown string

	set     *cursor.Set
	history *HistoryManager

	// lastClipboard holds the texts of the last multi-cursor copy or cut.
	lastClipboard []string

	// stash is the caret recorded on Alt+press, added on release.
	stash *cursor.Unit
}

// New creates a selector for view.
func New(view View, opts ...Option) *Selector {
	s := &Selector{
		id:       uuid.NewString(),
		view:     view,
		settings: defaultSettings{},
		commands: DefaultCommandTable(),
		lineUp:   DefaultLineUpCommand,
		lineDown: DefaultLineDownCommand,
		set:      cursor.NewSet(),
		history:  NewHistoryManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the selector in logs.
func (s *Selector) ID() string { return s.id }

// Set returns the cursor set.
func (s *Selector) Set() *cursor.Set { return s.set }

// History returns the cursor history.
func (s *Selector) History() *HistoryManager { return s.history }

// Commands returns the command classification.
func (s *Selector) Commands() *CommandTable { return s.commands }

// IsActive reports whether multi-cursor mode is on.
func (s *Selector) IsActive() bool { return !s.set.IsEmpty() }

// States returns resolved copies of the units in insertion order.
func (s *Selector) States() []cursor.State { return s.set.States(s.view) }

// LastClipboard returns the texts of the last multi-cursor copy.
func (s *Selector) LastClipboard() []string {
	return append([]string(nil), s.lastClipboard...)
}

// SetSettings replaces the user options.
func (s *Selector) SetSettings(settings Settings) {
	if settings != nil {
		s.settings = settings
	}
}

// DiscardSelections leaves multi-cursor mode. If every unit holds copied
// text, those texts become the multi-cursor clipboard in text order, the
// order a multi copy writes them in.
func (s *Selector) DiscardSelections() {
	if !s.set.IsEmpty() {
		texts := make([]string, 0, s.set.Len())
		for _, u := range s.set.SortedByCaret(s.view, false) {
			if u.CopiedText == "" {
				texts = nil
				break
			}
			texts = append(texts, u.CopiedText)
		}
		if texts != nil {
			s.lastClipboard = texts
		}
	}
	s.set.Clear()
	log.Debug(log.CatSelector, "units discarded", "selector", s.id)
}

// Cancel leaves multi-cursor mode, parking the view's caret on the last
// unit, or the first when KeepFirstEntry is set.
func (s *Selector) Cancel() Result {
	if s.set.IsEmpty() {
		return handler.NoOpWithReason(ErrNoUnits)
	}
	target := s.set.Last()
	if s.settings.KeepFirstEntry() {
		target = s.set.First()
	}
	s.view.ClearSelection()
	s.view.MoveCaret(target.CaretOffset(s.view), target.VirtualSpaces)
	s.DiscardSelections()
	return handler.Success()
}

// columnOf returns the display column of offset plus virtual spaces.
func (s *Selector) columnOf(offset ByteOffset, virtual int) int {
	lr := s.view.LineRange(s.view.LineOf(offset))
	line := s.view.Text(lr)
	return cursor.DisplayColumn(line, int(offset-lr.Start), s.view.TabSize()) + virtual
}

// addHostSelection adds the view's selection as a unit and makes its text
// the search text.
func (s *Selector) addHostSelection() {
	sel, reversed := s.view.Selection()
	caret := sel.End
	if reversed {
		caret = sel.Start
	}
	s.set.Add(cursor.NewRangeUnit(sel, reversed, s.columnOf(caret, 0), s.view))
	s.set.ClearCopiedText()
	s.set.SearchText = s.view.Text(sel)
}

// addCurrentCaret adds the view's caret as a pure caret unless one exists
// there already.
func (s *Selector) addCurrentCaret() error {
	caret, virtual := s.view.Caret()
	defer s.set.ClearCopiedText()
	if s.set.HasCaretAt(caret, s.view) {
		return ErrDuplicateCaret
	}
	u := cursor.NewCaretUnit(caret, s.columnOf(caret, virtual), s.view)
	u.VirtualSpaces = virtual
	s.set.Add(u)
	return nil
}

// parkOnLast clears the view's selection and moves its caret to the last
// unit.
func (s *Selector) parkOnLast() {
	s.view.ClearSelection()
	if last := s.set.Last(); last != nil {
		s.view.MoveCaret(last.CaretOffset(s.view), last.VirtualSpaces)
	}
}
