package registry

import (
	"strings"
	"sync"
)

// Registry maps command names to descriptors. Enumeration follows insertion
// order; re-registering a name replaces the descriptor but keeps its position,
// so a shadowed builtin stays where the builtin was.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Descriptor
	order    []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands: make(map[string]Descriptor),
	}
}

// Register inserts or overwrites the descriptor under name. Empty names are ignored.
func (r *Registry) Register(name string, d Descriptor) {
	if name == "" {
		return
	}
	d.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.commands[name] = d
}

// RegisterAll registers every descriptor under its own Name, in slice order.
func (r *Registry) RegisterAll(descriptors ...Descriptor) {
	for _, d := range descriptors {
		r.Register(d.Name, d)
	}
}

// Resolve looks up a command by exact, case-sensitive name.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.commands[name]
	return d, ok
}

// Enumerate returns every registered command in insertion order.
func (r *Registry) Enumerate() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, Entry{Name: name, Description: r.commands[name].Description})
	}
	return entries
}

// Names returns the registered names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// PrefixMatches returns all names starting with partial, in insertion order.
func (r *Registry) PrefixMatches(partial string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matches []string
	for _, name := range r.order {
		if strings.HasPrefix(name, partial) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
