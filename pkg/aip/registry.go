package aip

import (
	"sort"
	"sync"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// DefaultRegistry holds every screen declared with New or MustNew.
var DefaultRegistry = NewRegistry()

// Registry keeps screen namespaces globally unique.
type Registry struct {
	mu      sync.RWMutex
	screens map[Namespace][]string
}

// Entry is one row of the identifier table.
type Entry struct {
	Namespace  Namespace `json:"namespace" yaml:"namespace"`
	Element    string    `json:"element" yaml:"element"`
	Identifier string    `json:"identifier" yaml:"identifier"`
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{screens: make(map[Namespace][]string)}
}

// Register records a screen's tokens. A namespace can be registered once.
func (r *Registry) Register(ns Namespace, tokens []string) error {
	if err := ns.validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.screens[ns]; exists {
		return core.ErrDuplicateNamespace.WithMessagef("screen namespace %q already registered", ns)
	}
	r.screens[ns] = append([]string(nil), tokens...)
	return nil
}

// Lookup returns the tokens declared for ns.
func (r *Registry) Lookup(ns Namespace) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tokens, ok := r.screens[ns]
	if !ok {
		return nil, false
	}
	return append([]string(nil), tokens...), true
}

// Namespaces returns the registered namespaces, sorted.
func (r *Registry) Namespaces() []Namespace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Namespace, 0, len(r.screens))
	for ns := range r.screens {
		out = append(out, ns)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Identifiers returns every registered identifier sorted by namespace,
// then by declaration order within the screen.
func (r *Registry) Identifiers() []Entry {
	var entries []Entry
	for _, ns := range r.Namespaces() {
		tokens, _ := r.Lookup(ns)
		for _, token := range tokens {
			entries = append(entries, Entry{
				Namespace:  ns,
				Element:    token,
				Identifier: string(ns) + Separator + token,
			})
		}
	}
	return entries
}
