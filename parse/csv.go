package parse

import (
	"bytes"
	"context"
	"fmt"

	"github.com/poiesic/inflow/core"
	"github.com/tmc/langchaingo/documentloaders"
)

// CSVParser parses CSV documents into one text element per row,
// with column names folded into each row's text.
type CSVParser struct{}

// NewCSVParser creates a CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse produces a text element per CSV row.
func (p *CSVParser) Parse(ctx context.Context, doc *core.FetchedDocument) ([]core.Element, error) {
	loader := documentloaders.NewCSV(bytes.NewReader(doc.Content))

	docs, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	elements := make([]core.Element, 0, len(docs))
	for i, d := range docs {
		if d.PageContent == "" {
			continue
		}
		elements = append(elements, newElement(doc, i, core.ElementKindText, d.PageContent, nil))
	}

	return elements, nil
}
