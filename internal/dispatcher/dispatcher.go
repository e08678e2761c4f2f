package dispatcher

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
)

// PostDispatchFunc observes a command after it ran.
type PostDispatchFunc func(cmd handler.Command, result handler.Result)

// Dispatcher executes commands through a Router.
type Dispatcher struct {
	mu sync.RWMutex

	router    *Router
	postHooks []PostDispatchFunc

	recoverPanics bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPanicRecovery turns handler panics into error results.
func WithPanicRecovery(enabled bool) Option {
	return func(d *Dispatcher) {
		d.recoverPanics = enabled
	}
}

// New creates a dispatcher. Panic recovery is on by default.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		router:        NewRouter(),
		recoverPanics: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Router returns the dispatcher's router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h)
}

// RegisterHandlerFunc registers fn for an exact command name.
func (d *Dispatcher) RegisterHandlerFunc(name string, fn func(handler.Command) handler.Result) {
	d.router.Register(name, handler.NewHandlerFunc(fn))
}

// OnDispatch adds a post-dispatch hook.
func (d *Dispatcher) OnDispatch(fn PostDispatchFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, fn)
}

// CanDispatch reports whether a handler exists for name.
func (d *Dispatcher) CanDispatch(name string) bool {
	return d.router.CanRoute(name)
}

// Dispatch executes cmd.
func (d *Dispatcher) Dispatch(cmd handler.Command) handler.Result {
	h := d.router.Route(cmd)

	var result handler.Result
	switch {
	case h == nil:
		result = handler.Error(fmt.Errorf("%w: %s", ErrUnknownCommand, cmd.Name))
	case d.recoverPanics:
		result = d.executeWithRecovery(h, cmd)
	default:
		result = h.Handle(cmd)
	}

	d.mu.RLock()
	hooks := d.postHooks
	d.mu.RUnlock()
	for _, hook := range hooks {
		hook(cmd, result)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, cmd handler.Command) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			result = handler.Error(fmt.Errorf("%w: %s: %v\n%s", ErrPanic, cmd.Name, r, stack[:n]))
		}
	}()

	return h.Handle(cmd)
}
