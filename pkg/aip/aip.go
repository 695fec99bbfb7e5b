// Package aip derives accessibility identifiers for screen elements.
//
// Every screen declares a Namespace and a closed set of element tags. The
// identifier of a tag is the namespace and the tag token joined by Separator:
//
//	var Home = aip.MustNew("home", MainView, TableView)
//	Home.Identifier(TableView) // "home.tableView"
//
// The app under test assigns these identifiers to its views and the page
// objects query for them, so both sides derive the same string from the same
// declaration.
package aip

import (
	"fmt"
	"strings"

	"github.com/devicelab-dev/pageobject/pkg/core"
)

// Separator joins the screen namespace and the element token.
const Separator = "."

// Namespace is the identity of one screen, e.g. "home".
type Namespace string

// Element is the constraint satisfied by every per-screen tag type.
// The token of a tag is its string value.
type Element interface {
	~string
}

// Provider derives identifiers for one screen's element tags.
type Provider[E Element] struct {
	ns       Namespace
	elements []E
	declared map[E]struct{}
}

// New declares a screen and registers its namespace in DefaultRegistry.
// It fails on an empty namespace, an empty tag, a tag containing the
// separator, a repeated tag or a namespace that is already registered.
func New[E Element](ns Namespace, elements ...E) (*Provider[E], error) {
	return NewIn(DefaultRegistry, ns, elements...)
}

// NewIn is New with an explicit registry.
func NewIn[E Element](reg *Registry, ns Namespace, elements ...E) (*Provider[E], error) {
	p, err := newProvider(ns, elements)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		if err := reg.Register(ns, p.tokens()); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// MustNew is New for package-level declarations. It panics on error.
func MustNew[E Element](ns Namespace, elements ...E) *Provider[E] {
	p, err := New(ns, elements...)
	if err != nil {
		panic(err)
	}
	return p
}

func newProvider[E Element](ns Namespace, elements []E) (*Provider[E], error) {
	if err := ns.validate(); err != nil {
		return nil, err
	}
	if len(elements) == 0 {
		return nil, core.ErrInvalidElement.WithMessagef("screen %q declares no elements", ns)
	}

	p := &Provider[E]{
		ns:       ns,
		elements: make([]E, 0, len(elements)),
		declared: make(map[E]struct{}, len(elements)),
	}
	for _, e := range elements {
		token := string(e)
		switch {
		case token == "":
			return nil, core.ErrInvalidElement.WithMessagef("screen %q: empty element token", ns)
		case containsSeparator(token):
			return nil, core.ErrInvalidElement.WithMessagef("screen %q: element token %q contains %q", ns, token, Separator)
		}
		if _, dup := p.declared[e]; dup {
			return nil, core.ErrInvalidElement.WithMessagef("screen %q: element %q declared twice", ns, token)
		}
		p.declared[e] = struct{}{}
		p.elements = append(p.elements, e)
	}
	return p, nil
}

// Namespace returns the screen namespace.
func (p *Provider[E]) Namespace() Namespace {
	return p.ns
}

// Elements returns every declared tag in declaration order.
func (p *Provider[E]) Elements() []E {
	out := make([]E, len(p.elements))
	copy(out, p.elements)
	return out
}

// Declared reports whether e belongs to this screen.
func (p *Provider[E]) Declared(e E) bool {
	_, ok := p.declared[e]
	return ok
}

// Identifier returns the namespaced identifier of e.
func (p *Provider[E]) Identifier(e E) string {
	return Identifier(p.ns, e)
}

// Identifiers returns the identifier of every declared tag, keyed by tag.
func (p *Provider[E]) Identifiers() map[E]string {
	out := make(map[E]string, len(p.elements))
	for _, e := range p.elements {
		out[e] = p.Identifier(e)
	}
	return out
}

// String implements fmt.Stringer.
func (p *Provider[E]) String() string {
	return fmt.Sprintf("aip(%s, %d elements)", p.ns, len(p.elements))
}

func (p *Provider[E]) tokens() []string {
	out := make([]string, len(p.elements))
	for i, e := range p.elements {
		out[i] = string(e)
	}
	return out
}

// Identifier joins a namespace and a tag token.
func Identifier[E Element](ns Namespace, e E) string {
	return string(ns) + Separator + string(e)
}

func (ns Namespace) validate() error {
	if ns == "" {
		return core.ErrInvalidElement.WithMessage("empty screen namespace")
	}
	if containsSeparator(string(ns)) {
		return core.ErrInvalidElement.WithMessagef("screen namespace %q contains %q", ns, Separator)
	}
	return nil
}

func containsSeparator(s string) bool {
	return strings.Contains(s, Separator)
}
