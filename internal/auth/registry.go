package auth

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds named authentication methods. Registration happens
// during startup; every request-time access is a read-only Lookup, so
// the lock is uncontended once serving begins.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]*Method
}

// NewRegistry creates an empty method registry.
func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]*Method)}
}

// normalizeName is the single place method names are canonicalized.
// Registration and lookup are case-insensitive.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a method under its name. The name must be non-empty
// and unique (case-insensitive), and the method must carry both hooks.
// The registry is left untouched when registration fails.
func (r *Registry) Register(m *Method) error {
	if m == nil {
		return ErrInvalidDefinition
	}

	key := normalizeName(m.Name)
	if key == "" || m.Parser == nil || m.Validator == nil {
		return fmt.Errorf("%w: %q", ErrInvalidDefinition, m.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[key]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
	}

	r.methods[key] = m
	return nil
}

// Lookup returns the method registered under name. Repeated lookups
// for the same name return the identical *Method.
func (r *Registry) Lookup(name string) (*Method, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.methods[normalizeName(name)]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUndefinedAuth, name)
	}
	return m, nil
}

// Names returns the registered method names in sorted order, for startup logging.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
