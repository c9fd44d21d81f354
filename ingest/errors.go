package ingest

import "errors"

var (
	// ErrInvalidRetries indicates a negative retry budget.
	ErrInvalidRetries = errors.New("retry budget cannot be negative")

	// ErrInvalidBackoff indicates a non-positive backoff multiplier or maximum.
	ErrInvalidBackoff = errors.New("backoff multiplier and max must be positive")

	// ErrInvalidBatchSize indicates a non-positive batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrInvalidWorkers indicates a non-positive worker pool size.
	ErrInvalidWorkers = errors.New("worker count must be positive")

	// ErrUnknownMode indicates an unrecognized strategy mode.
	ErrUnknownMode = errors.New("unknown strategy mode")

	// ErrStoreRequired is returned when constructing a strategy without a store.
	ErrStoreRequired = errors.New("store is required")

	// ErrParserRouterRequired is returned when constructing a strategy without a parser router.
	ErrParserRouterRequired = errors.New("parser router is required")

	// ErrEnricherRouterRequired is returned when constructing a strategy without an enricher router.
	ErrEnricherRouterRequired = errors.New("enricher router is required")

	// ErrEmbedderRequired is returned when constructing a strategy without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrStore marks a failure in a store or embedding call during the index stages.
	ErrStore = errors.New("store operation failed")
)
