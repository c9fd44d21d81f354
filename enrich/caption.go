package enrich

import (
	"context"
	"fmt"

	"github.com/poiesic/inflow/ai"
	"github.com/poiesic/inflow/core"
)

const defaultImageMIME = "image/png"

// ImageEnricher captions image elements so they become indexable text.
type ImageEnricher struct {
	captioner ai.Captioner
}

// NewImageEnricher creates an image enricher backed by the given captioner.
func NewImageEnricher(captioner ai.Captioner) *ImageEnricher {
	return &ImageEnricher{captioner: captioner}
}

// Enrich replaces each image element with a captioned copy. The raw image
// bytes are dropped from the result; the caption carries the content.
func (e *ImageEnricher) Enrich(ctx context.Context, elements []core.Element) ([]core.Element, error) {
	if _, err := sameKind(elements); err != nil {
		return nil, err
	}

	enriched := make([]core.Element, 0, len(elements))
	for _, elem := range elements {
		mimeType := elem.Metadata["mime_type"]
		if mimeType == "" {
			mimeType = defaultImageMIME
		}

		caption, err := e.captioner.CaptionImage(ctx, mimeType, elem.Raw)
		if err != nil {
			return nil, fmt.Errorf("%w: caption image %d: %v", ErrEnrich, elem.ID, err)
		}

		out := elem
		out.Text = caption
		out.Raw = nil
		enriched = append(enriched, out)
	}

	return enriched, nil
}

// TableEnricher summarizes table elements so they become indexable text.
type TableEnricher struct {
	captioner ai.Captioner
}

// NewTableEnricher creates a table enricher backed by the given captioner.
func NewTableEnricher(captioner ai.Captioner) *TableEnricher {
	return &TableEnricher{captioner: captioner}
}

// Enrich replaces each table element with a summarized copy. The original
// markup is kept in Raw for diagnostics; the summary carries the content.
func (e *TableEnricher) Enrich(ctx context.Context, elements []core.Element) ([]core.Element, error) {
	if _, err := sameKind(elements); err != nil {
		return nil, err
	}

	enriched := make([]core.Element, 0, len(elements))
	for _, elem := range elements {
		markup := elem.Text
		if markup == "" {
			markup = string(elem.Raw)
		}

		summary, err := e.captioner.SummarizeTable(ctx, markup)
		if err != nil {
			return nil, fmt.Errorf("%w: summarize table %d: %v", ErrEnrich, elem.ID, err)
		}

		out := elem
		out.Text = summary
		enriched = append(enriched, out)
	}

	return enriched, nil
}
