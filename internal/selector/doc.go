// Package selector simulates multiple cursors on top of a single-cursor view.
//
// A Selector owns an ordered cursor.Set for one view. It grows the set by
// searching for further occurrences of the selected text, by adding carets
// above or below, by splitting a selection into line carets, or by
// Alt+clicking. Once the set is non-empty every command sent through
// Execute is replayed once per unit: the view's real caret and selection are
// placed on the unit, the view runs the command, and the unit is refreshed
// from where the view left its caret.
//
// How a command is replayed is decided by its Behavior, looked up by name in
// a CommandTable. Moves strip selections, extending commands grow or shrink
// them, and commands such as comment toggling adopt whatever selection the
// view produced. Copy, cut and paste keep one clipboard entry per unit so
// that a multi-cursor copy pastes back one entry per cursor.
//
// Each replayed command runs inside one undo group of the view. The set is
// recorded against the view's version before and after the group so that
// undo and redo restore the cursors together with the text.
//
// The package depends only on the interfaces in host.go; the reference
// implementation lives in internal/engine.
package selector
