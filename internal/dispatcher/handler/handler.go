// Package handler provides the command, handler and result types used to
// dispatch host editing commands.
package handler

// Command is one host editing command.
type Command struct {
	// Name is the namespaced command name, e.g. "cursor.moveDown".
	Name string

	// Text is the argument of text-carrying commands such as
	// "editor.insertText".
	Text string
}

// Namespace returns the prefix before the first dot, or "".
func (c Command) Namespace() string {
	for i := 0; i < len(c.Name); i++ {
		if c.Name[i] == '.' {
			return c.Name[:i]
		}
	}
	return ""
}

// String returns the command name.
func (c Command) String() string {
	return c.Name
}

// Handler processes a specific command or set of commands.
type Handler interface {
	// Handle executes the command and returns a result.
	Handle(cmd Command) Result

	// CanHandle returns true if this handler can process the command.
	CanHandle(name string) bool

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// HandlerFunc is a function adapter for Handler interface.
type HandlerFunc struct {
	fn   func(cmd Command) Result
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(cmd Command) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: 0}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(cmd Command) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(cmd Command) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(cmd)
}

// CanHandle implements Handler.CanHandle.
// HandlerFunc always returns true; caller must ensure correct routing.
func (f *HandlerFunc) CanHandle(string) bool {
	return true
}

// Priority implements Handler.Priority.
func (f *HandlerFunc) Priority() int {
	return f.prio
}

// NamespaceHandler handles all commands within a namespace.
type NamespaceHandler interface {
	// HandleCommand handles a command within this namespace.
	HandleCommand(cmd Command) Result

	// CanHandle returns true if this handler can process the command.
	CanHandle(name string) bool

	// Namespace returns the namespace prefix (e.g., "cursor", "editor").
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(cmd Command) Result {
	return a.h.HandleCommand(cmd)
}

func (a *namespaceAdapter) CanHandle(name string) bool {
	return a.h.CanHandle(name)
}

func (a *namespaceAdapter) Priority() int {
	return 0
}

// BaseNamespaceHandler provides a base implementation for namespace handlers.
type BaseNamespaceHandler struct {
	namespace string
	commands  map[string]func(cmd Command) Result
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		commands:  make(map[string]func(cmd Command) Result),
	}
}

// Register registers a handler function for a command name.
func (h *BaseNamespaceHandler) Register(name string, fn func(cmd Command) Result) {
	h.commands[name] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(name string) bool {
	_, ok := h.commands[name]
	return ok
}

// HandleCommand implements NamespaceHandler.HandleCommand.
func (h *BaseNamespaceHandler) HandleCommand(cmd Command) Result {
	fn, ok := h.commands[cmd.Name]
	if !ok {
		return Errorf("unknown command in namespace %s: %s", h.namespace, cmd.Name)
	}
	return fn(cmd)
}

// Commands returns the registered command names.
func (h *BaseNamespaceHandler) Commands() []string {
	names := make([]string, 0, len(h.commands))
	for name := range h.commands {
		names = append(names, name)
	}
	return names
}
