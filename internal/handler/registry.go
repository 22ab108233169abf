package handler

import (
	"fmt"
	"sync"

	"github.com/phlthy88/unified-theming/internal/model"
)

// Registry holds the registered handlers. Iteration order is the
// registration order; the orchestrator's dispatch sequence and its log
// output depend on that order being stable.
type Registry struct {
	handlers map[string]Handler
	order    []string
	mu       sync.RWMutex
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler. Duplicate names are rejected.
func (r *Registry) Register(h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[h.Name()]; exists {
		return fmt.Errorf("handler with name '%s' already registered", h.Name())
	}
	r.handlers[h.Name()] = h
	r.order = append(r.order, h.Name())
	return nil
}

// Get returns a handler by name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	return h, ok
}

// All returns every handler in registration order.
func (r *Registry) All() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Handler, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.handlers[name])
	}
	return result
}

// Names returns the handler names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// Select returns the handlers matching the requested names, preserving
// registration order. With no names requested it returns all handlers.
// Unknown names are simply absent from the result.
func (r *Registry) Select(names []string) []Handler {
	if len(names) == 0 {
		return r.All()
	}

	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[n] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Handler
	for _, name := range r.order {
		if requested[name] {
			result = append(result, r.handlers[name])
		}
	}
	return result
}

// ForToolkit returns the first registered handler for a toolkit.
func (r *Registry) ForToolkit(tk model.Toolkit) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if r.handlers[name].Toolkit() == tk {
			return r.handlers[name], true
		}
	}
	return nil, false
}
