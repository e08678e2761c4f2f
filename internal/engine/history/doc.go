// Package history provides undo/redo for the reference editor engine.
//
// Edits are recorded as commands that can be executed and undone against a
// Target. Commands recorded while a group is open collapse into a single
// undo unit, so a multi-cursor replay of one keystroke undoes in one step.
//
// # Versions
//
// Every recorded unit bumps a monotonically increasing version number. The
// reiterated version is the version the document content corresponds to:
// a fresh edit moves it to the new version, undo moves it back to the
// version the undone unit started from, and redo moves it forward again.
// Two points in time with the same reiterated version have identical text,
// which lets callers key per-version state (such as cursor snapshots) off
// Version.
//
//	h := history.NewHistory(1000)
//
//	scope := h.GroupScope("type")
//	_ = h.Execute(history.NewEditCommand(edit), target)
//	scope.End()
//
//	v := h.Version()
//	_ = h.Undo(target) // h.Version() is now the version before the group
//	_ = h.Redo(target) // h.Version() == v again
package history
