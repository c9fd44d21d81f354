package parse

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/inflow/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/textsplitter"
)

// HTMLParser parses HTML documents. Body text becomes chunked text elements;
// every <table> fragment additionally becomes an intermediate table element
// that the enrich stage summarizes before indexing.
type HTMLParser struct {
	splitter textsplitter.TextSplitter
}

// NewHTMLParser creates an HTML parser with the default splitter.
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(DefaultChunkSize),
			textsplitter.WithChunkOverlap(DefaultChunkOverlap),
		),
	}
}

// Parse extracts text chunks and table fragments from the document.
func (p *HTMLParser) Parse(ctx context.Context, doc *core.FetchedDocument) ([]core.Element, error) {
	loader := documentloaders.NewHTML(bytes.NewReader(doc.Content))

	docs, err := loader.LoadAndSplit(ctx, p.splitter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var elements []core.Element
	position := 0
	for _, d := range docs {
		if d.PageContent == "" {
			continue
		}
		elements = append(elements, newElement(doc, position, core.ElementKindText, d.PageContent, nil))
		position++
	}

	for _, markup := range extractTables(string(doc.Content)) {
		elements = append(elements, newElement(doc, position, core.ElementKindTable, "", []byte(markup)))
		position++
	}

	return elements, nil
}

// extractTables returns every <table>...</table> fragment in the markup.
// Nested tables are returned as part of their outermost fragment.
func extractTables(markup string) []string {
	var tables []string
	lower := strings.ToLower(markup)

	offset := 0
	for {
		start := strings.Index(lower[offset:], "<table")
		if start < 0 {
			break
		}
		start += offset

		end := strings.Index(lower[start:], "</table>")
		if end < 0 {
			break
		}
		end += start + len("</table>")

		tables = append(tables, markup[start:end])
		offset = end
	}

	return tables
}
