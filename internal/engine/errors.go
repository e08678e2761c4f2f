package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrEmptyClipboard indicates a paste with nothing on the clipboard.
	ErrEmptyClipboard = errors.New("clipboard is empty")

	// ErrAtBoundary indicates a motion or edit had nowhere to go.
	ErrAtBoundary = errors.New("at text boundary")

	// ErrNoSelection indicates a command that needs selected text ran
	// without any.
	ErrNoSelection = errors.New("nothing selected")
)
