package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no handler was found for a command.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")
)
