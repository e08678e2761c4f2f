package selector

// Option configures a Selector.
type Option func(*Selector)

// WithSearcher sets the search backend. Without one, occurrence search is
// a no-op.
func WithSearcher(s Searcher) Option {
	return func(sel *Selector) { sel.searcher = s }
}

// WithOutliner sets the folding backend.
func WithOutliner(o Outliner) Option {
	return func(sel *Selector) { sel.outliner = o }
}

// WithClipboard sets the clipboard used for multi-cursor copy and paste.
func WithClipboard(c Clipboard) Option {
	return func(sel *Selector) { sel.clipboard = c }
}

// WithUndoHost sets the undo grouping backend.
func WithUndoHost(u UndoHost) Option {
	return func(sel *Selector) { sel.undo = u }
}

// WithSettings sets the user options.
func WithSettings(s Settings) Option {
	return func(sel *Selector) {
		if s != nil {
			sel.settings = s
		}
	}
}

// WithCommandTable sets the command classification.
func WithCommandTable(t *CommandTable) Option {
	return func(sel *Selector) {
		if t != nil {
			sel.commands = t
		}
	}
}

// WithLineCommands names the view commands that move the caret one line
// up and down. AddCaretAbove and AddCaretBelow run them.
func WithLineCommands(up, down string) Option {
	return func(sel *Selector) {
		sel.lineUp = up
		sel.lineDown = down
	}
}
