package selector

import "errors"

// Errors carried by NoOp results. None of them fails an operation.
var (
	// ErrNoOccurrenceFound means the search found nothing new to add.
	ErrNoOccurrenceFound = errors.New("no occurrence found")

	// ErrDuplicateCaret means a caret already exists at the position.
	ErrDuplicateCaret = errors.New("caret already exists at position")

	// ErrHistorySnapshotMissing means no cursors were recorded for a version.
	ErrHistorySnapshotMissing = errors.New("no cursor snapshot for version")

	// ErrNoSelection means the operation needs a selection in the view.
	ErrNoSelection = errors.New("no selection")

	// ErrNoUnits means the operation needs multi-cursor mode.
	ErrNoUnits = errors.New("no cursors")
)
