// Package cursor provides the selection types of the editor engine.
//
// The cursor package handles:
//
//   - The host's single real selection, using the anchor/head Selection type
//   - Simulated cursors (Unit) whose positions are tracked across edits
//   - The ordered collection of simulated cursors (Set)
//   - Display-column arithmetic used to keep vertical moves aligned
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text.
//
// Units:
//
// A Unit stores tracking.Position values rather than raw offsets, so it
// stays valid while other units edit the buffer. Every method that needs a
// concrete offset takes a Resolver, normally the editor view, which
// resolves positions against the current buffer revision.
//
// A Unit either has a range (Start and End both set) or is a pure caret.
// When it has a range, its caret sits at End, or at Start when the unit is
// reversed.
//
// Sets:
//
// Set keeps units in insertion order. Replaying commands in that order
// keeps the host undo stack consistent, so sorting is always done on a
// copy (see SortedByCaret). RemoveDuplicates and CombineOverlapping restore
// the set invariants after a replay: no two units share a caret and no two
// ranges overlap.
//
// Thread Safety:
//
// Selection is an immutable value type. Unit and Set are not thread-safe;
// they are owned by a single selector.
package cursor
