package dispatcher

import (
	"slices"
	"sort"
	"sync"

	"github.com/dshills/multicursor/internal/dispatcher/handler"
)

// Router finds the handler for a command. Exact-name handlers win over
// namespace handlers, which win over the fallback.
type Router struct {
	mu sync.RWMutex

	// exact maps a command name to its handlers, highest priority first.
	exact map[string][]handler.Handler

	// namespaces maps a prefix such as "cursor" to the handler of "cursor.*".
	namespaces map[string]handler.NamespaceHandler

	fallback handler.Handler
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		exact:      make(map[string][]handler.Handler),
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// Register adds a handler for an exact command name. Several handlers may
// share a name; the one with the highest priority is used.
func (r *Router) Register(name string, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := append(r.exact[name], h)
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority() > handlers[j].Priority()
	})
	r.exact[name] = handlers
}

// RegisterNamespace registers h for every command in its namespace.
func (r *Router) RegisterNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// SetFallback sets the handler for commands nothing else claims.
func (r *Router) SetFallback(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route returns the handler for cmd, or nil.
func (r *Router) Route(cmd handler.Command) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if handlers := r.exact[cmd.Name]; len(handlers) > 0 {
		return handlers[0]
	}
	if h, ok := r.namespaces[cmd.Namespace()]; ok && h.CanHandle(cmd.Name) {
		return handler.NewNamespaceAdapter(h)
	}
	return r.fallback
}

// CanRoute reports whether Route would find a handler for name.
func (r *Router) CanRoute(name string) bool {
	return r.Route(handler.Command{Name: name}) != nil
}

// Namespaces returns the registered namespace names, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
