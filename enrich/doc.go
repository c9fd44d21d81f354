// Package enrich completes intermediate elements so they can be indexed.
//
// A Router dispatches element groups to the enricher registered for their
// ElementKind tag; kinds without a registered enricher pass through the
// pipeline unchanged. Enrichers receive elements of a single kind and return
// replacement elements, typically converting a raw payload (image bytes,
// table markup) into indexable text via the ai package.
package enrich
