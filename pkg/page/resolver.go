package page

import (
	"fmt"
	"strings"

	"github.com/devicelab-dev/pageobject/pkg/aip"
	"github.com/devicelab-dev/pageobject/pkg/core"
)

// Resolver maps a screen's element tag to a concrete element under a query root.
// Implementations must cover every tag the screen declares; an uncovered tag
// resolves to core.ErrUnmappedElement, never to a guess.
type Resolver[E aip.Element] interface {
	Resolve(e E, root core.QueryRoot) (core.Element, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc[E aip.Element] func(e E, root core.QueryRoot) (core.Element, error)

// Resolve calls f(e, root).
func (f ResolverFunc[E]) Resolve(e E, root core.QueryRoot) (core.Element, error) {
	return f(e, root)
}

// Kinds declares the structural kind of every tag of a screen.
type Kinds[E aip.Element] map[E]core.ElementType

// KindResolver resolves a tag to the element of its declared kind whose
// identifier is the provider-derived identifier of the tag.
type KindResolver[E aip.Element] struct {
	provider *aip.Provider[E]
	kinds    Kinds[E]
}

// NewResolver checks that kinds covers exactly the provider's tags.
// Missing tags, undeclared tags and invalid kinds all fail with core.ErrUnmappedElement.
func NewResolver[E aip.Element](p *aip.Provider[E], kinds Kinds[E]) (*KindResolver[E], error) {
	if p == nil {
		return nil, core.ErrUnmappedElement.WithMessage("resolver needs a provider")
	}

	var missing []string
	for _, e := range p.Elements() {
		if _, ok := kinds[e]; !ok {
			missing = append(missing, string(e))
		}
	}
	if len(missing) > 0 {
		return nil, core.ErrUnmappedElement.
			WithMessagef("%s: no query kind for %s", p.Namespace(), strings.Join(missing, ", ")).
			WithDetails(map[string]interface{}{"namespace": string(p.Namespace()), "missing": missing})
	}

	copied := make(Kinds[E], len(kinds))
	for e, kind := range kinds {
		if !p.Declared(e) {
			return nil, core.ErrUnmappedElement.WithMessagef("%s: %q is not a declared element", p.Namespace(), string(e))
		}
		if !kind.Valid() {
			return nil, core.ErrUnmappedElement.WithMessagef("%s.%s: unknown element type %q", p.Namespace(), string(e), kind)
		}
		copied[e] = kind
	}

	return &KindResolver[E]{provider: p, kinds: copied}, nil
}

// MustNewResolver is NewResolver that panics on error, for package-level declarations.
func MustNewResolver[E aip.Element](p *aip.Provider[E], kinds Kinds[E]) *KindResolver[E] {
	r, err := NewResolver(p, kinds)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve implements Resolver.
func (r *KindResolver[E]) Resolve(e E, root core.QueryRoot) (core.Element, error) {
	kind, ok := r.kinds[e]
	if !ok {
		return nil, core.ErrUnmappedElement.WithMessagef("%s: no query kind for %q", r.provider.Namespace(), string(e))
	}
	if root == nil {
		return nil, fmt.Errorf("resolve %s: nil query root", r.provider.Identifier(e))
	}
	return root.Descendants(kind).Matching(r.provider.Identifier(e)), nil
}

// Kind returns the declared kind of e.
func (r *KindResolver[E]) Kind(e E) (core.ElementType, bool) {
	kind, ok := r.kinds[e]
	return kind, ok
}

// Provider returns the identifier provider the resolver derives identifiers from.
func (r *KindResolver[E]) Provider() *aip.Provider[E] {
	return r.provider
}
