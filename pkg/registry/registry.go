// Package registry holds the catalog of operations that workflow steps can
// bind to. An operation descriptor exposes its parameter names and types, its
// output shape and the function that computes it.
package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/covetools/cove/pkg/monitor"
)

// Func is the signature of an operation implementation. It receives the
// resolved input values keyed by parameter name and a progress monitor.
type Func func(ctx context.Context, args map[string]any, mon monitor.Monitor) (any, error)

// Registry manages the available operations.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]*Operation
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		ops: make(map[string]*Operation),
	}
}

// Register adds an operation to the registry.
// If an operation with the same name exists, it is overwritten.
func (r *Registry) Register(op *Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[op.Name] = op
}

// Lookup retrieves an operation descriptor by name.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Names returns the registered operation names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
