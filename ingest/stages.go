// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingest

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/poiesic/inflow/ai"
	"github.com/poiesic/inflow/core"
	"github.com/poiesic/inflow/enrich"
	"github.com/poiesic/inflow/parse"
	"github.com/poiesic/inflow/storage"
)

// stages holds the collaborators the four stage operations call into.
// Each operation is a pure call wrapped by the Retryer at the strategy
// level; stages itself is stateless between calls.
type stages struct {
	store     storage.Store
	parsers   *parse.Router
	enrichers *enrich.Router
	embedder  ai.Embedder
}

// parseDocument resolves the parser for the document's type, fetches the
// raw bytes, and parses them into elements.
func (s *stages) parseDocument(ctx context.Context, meta core.DocumentMeta) ([]core.Element, error) {
	parser, err := s.parsers.Get(meta.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve parser for %s", meta.URI)
	}

	doc, err := meta.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", meta.URI)
	}

	elements, err := parser.Parse(ctx, doc)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", meta.URI)
	}
	return elements, nil
}

// enrichElements completes the intermediate elements that have a registered
// enricher; kinds without one pass through unchanged. Elements are grouped
// by kind and each group is enriched in one call. Group output replaces
// group input; groups keep first-seen order.
func (s *stages) enrichElements(ctx context.Context, elements []core.Element) ([]core.Element, error) {
	var kinds []core.ElementKind
	groups := make(map[core.ElementKind][]core.Element)
	for _, elem := range elements {
		if _, seen := groups[elem.Kind]; !seen {
			kinds = append(kinds, elem.Kind)
		}
		groups[elem.Kind] = append(groups[elem.Kind], elem)
	}

	out := make([]core.Element, 0, len(elements))
	for _, kind := range kinds {
		group := groups[kind]
		if !s.enrichers.Has(kind) {
			out = append(out, group...)
			continue
		}

		enricher, err := s.enrichers.Get(kind)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve enricher for %q", kind)
		}
		enriched, err := enricher.Enrich(ctx, group)
		if err != nil {
			return nil, errors.Wrapf(err, "enrich %d %q elements", len(group), kind)
		}
		out = append(out, enriched...)
	}
	return out, nil
}

// removeStale deletes every store entry whose SourceID matches one of the
// given elements' source identifiers. The store has no delete-by-filter
// primitive, so this is list-then-filter-then-remove.
func (s *stages) removeStale(ctx context.Context, elements []core.Element) error {
	if len(elements) == 0 {
		return nil
	}

	sources := make(map[core.ID]struct{})
	for _, elem := range elements {
		sources[elem.SourceID] = struct{}{}
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, ErrStore), "list entries")
	}

	var stale []core.ID
	for _, entry := range entries {
		if _, ok := sources[entry.SourceID]; ok {
			stale = append(stale, entry.ID)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	if err := s.store.Remove(ctx, stale...); err != nil {
		return errors.Wrapf(errors.Mark(err, ErrStore), "remove %d stale entries", len(stale))
	}
	return nil
}

// insertElements converts elements into store entries, embedding their text,
// and stores them.
func (s *stages) insertElements(ctx context.Context, elements []core.Element) error {
	if len(elements) == 0 {
		return nil
	}

	texts := make([]string, len(elements))
	for i, elem := range elements {
		texts[i] = elem.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return errors.Wrapf(errors.Mark(err, ErrStore), "embed %d elements", len(elements))
	}
	if len(vectors) != len(elements) {
		return errors.Wrapf(ErrStore, "embedding count mismatch: expected %d, got %d", len(elements), len(vectors))
	}

	entries := make([]*core.Entry, len(elements))
	for i, elem := range elements {
		entries[i] = &core.Entry{
			ID:          elem.ID,
			SourceID:    elem.SourceID,
			DocumentURI: elem.DocumentURI,
			Kind:        elem.Kind,
			Text:        elem.Text,
			Vector:      vectors[i],
			Metadata:    elem.Metadata,
		}
	}

	if err := s.store.Store(ctx, entries...); err != nil {
		return errors.Wrapf(errors.Mark(err, ErrStore), "store %d entries", len(entries))
	}
	return nil
}

// index runs the remove-then-insert pair for a set of elements. There is no
// rollback if remove succeeds and insert then fails; the affected documents
// are reported failed and the removed entries stay gone.
func (s *stages) index(ctx context.Context, elements []core.Element) error {
	if err := s.removeStale(ctx, elements); err != nil {
		return err
	}
	return s.insertElements(ctx, elements)
}

// needsEnrichment reports whether any element still requires an enrichment
// pass before indexing.
func needsEnrichment(elements []core.Element) bool {
	for _, elem := range elements {
		if elem.Intermediate() {
			return true
		}
	}
	return false
}
