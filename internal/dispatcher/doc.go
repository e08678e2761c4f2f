// Package dispatcher routes host editing commands to their handlers.
//
// Commands are routed in two tiers: an exact-name table, then namespace
// handlers keyed by the prefix before the first dot ("cursor" handles
// "cursor.moveDown"). Unknown commands produce an error result wrapping
// ErrUnknownCommand rather than a panic, and a panicking handler is turned
// into an error result wrapping ErrPanic.
//
//	d := dispatcher.New()
//	cursorNS := handler.NewBaseNamespaceHandler("cursor")
//	cursorNS.Register("cursor.moveDown", moveDown)
//	d.RegisterNamespace(cursorNS)
//
//	result := d.Dispatch(handler.Command{Name: "cursor.moveDown"})
//
// Post-dispatch hooks observe every command and its result; the reference
// editor uses one to log commands.
package dispatcher
