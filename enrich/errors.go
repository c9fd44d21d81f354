package enrich

import "errors"

var (
	// ErrEnrich indicates an enricher failed to complete its elements.
	ErrEnrich = errors.New("enrich failed")

	// ErrNoEnricher indicates no enricher is registered for an element kind.
	ErrNoEnricher = errors.New("no enricher registered")

	// ErrNilEnricher is returned when registering a nil enricher.
	ErrNilEnricher = errors.New("enricher cannot be nil")

	// ErrMixedKinds indicates an enricher received elements of multiple kinds.
	ErrMixedKinds = errors.New("elements must share a single kind")
)
