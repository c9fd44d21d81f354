package enrich

import (
	"context"
	"fmt"

	"github.com/poiesic/inflow/ai"
	"github.com/poiesic/inflow/core"
)

// Enricher completes intermediate elements of a single kind.
// Implementations must be thread-safe for concurrent use.
type Enricher interface {
	// Enrich returns replacement elements for the given elements, which all
	// share one ElementKind. Failures are reported wrapping ErrEnrich.
	Enrich(ctx context.Context, elements []core.Element) ([]core.Element, error)
}

// Router dispatches element groups to enrichers by their ElementKind tag.
// Registration happens at setup time; lookups are safe for concurrent use
// once registration is complete.
type Router struct {
	enrichers map[core.ElementKind]Enricher
}

// NewRouter creates an empty enricher router.
func NewRouter() *Router {
	return &Router{enrichers: make(map[core.ElementKind]Enricher)}
}

// DefaultRouter creates a router with the bundled enrichers registered,
// backed by the given captioner.
func DefaultRouter(captioner ai.Captioner) *Router {
	r := NewRouter()
	r.Register(core.ElementKindImage, NewImageEnricher(captioner))
	r.Register(core.ElementKindTable, NewTableEnricher(captioner))
	return r
}

// Register associates an enricher with an element kind, replacing any
// previous registration for that kind.
func (r *Router) Register(k core.ElementKind, e Enricher) error {
	if e == nil {
		return ErrNilEnricher
	}
	r.enrichers[k] = e
	return nil
}

// Has reports whether an enricher is registered for the element kind.
func (r *Router) Has(k core.ElementKind) bool {
	_, ok := r.enrichers[k]
	return ok
}

// Get returns the enricher registered for the element kind.
// Returns an error wrapping ErrNoEnricher when none is registered.
func (r *Router) Get(k core.ElementKind) (Enricher, error) {
	e, ok := r.enrichers[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoEnricher, k)
	}
	return e, nil
}

// sameKind verifies all elements share one kind, returning it.
func sameKind(elements []core.Element) (core.ElementKind, error) {
	if len(elements) == 0 {
		return "", nil
	}
	kind := elements[0].Kind
	for _, e := range elements[1:] {
		if e.Kind != kind {
			return "", fmt.Errorf("%w: %q and %q", ErrMixedKinds, kind, e.Kind)
		}
	}
	return kind, nil
}
