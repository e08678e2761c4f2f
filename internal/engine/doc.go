// Package engine provides a reference single-cursor editor view for the
// multi-cursor selector.
//
// The engine combines buffer management, position tracking, undo/redo and
// a named command set into one view. A selector.Selector is layered on top
// and replays commands across its simulated cursors by driving the view's
// one real caret.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - buffer: String-backed text with revisions and line indexing
//   - tracking: Edit log that carries offsets across revisions
//   - history: Command-based undo/redo with nested groups and versions
//   - cursor: The real caret's Selection plus the selector's units
//
// # Commands
//
// Commands are dispatched by name through the dispatcher package and are
// grouped into the cursor, select, editor and view namespaces:
//
//	e := engine.New(engine.WithContent("foo bar foo"))
//	e.Selector().SelectNextOccurrence() // selects the first "foo"
//	e.Selector().SelectNextOccurrence() // adds the second one
//	e.Type("baz")                       // "baz bar baz"
//	e.Do(engine.CmdUndo)                // "foo bar foo", both selected again
//
// Execute and its helpers route through the selector. Exec runs a command
// once against the real caret and is what the selector itself calls.
//
// # Thread Safety
//
// Read accessors may be called from any goroutine. Commands mutate the
// caret and buffer in several steps and must be issued from one goroutine
// at a time.
package engine
