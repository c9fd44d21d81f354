package parse

import (
	"bytes"
	"context"
	"fmt"

	"github.com/poiesic/inflow/core"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	// DefaultChunkSize is the target chunk size in characters for text splitting.
	DefaultChunkSize = 1500

	// DefaultChunkOverlap is the overlap between adjacent chunks in characters.
	DefaultChunkOverlap = 200
)

// TextParser parses plain-text documents into text elements, splitting long
// documents into overlapping chunks sized for embedding.
type TextParser struct {
	splitter textsplitter.TextSplitter
}

// TextOption configures a TextParser.
type TextOption func(*TextParser)

// WithSplitter overrides the default recursive-character splitter.
func WithSplitter(s textsplitter.TextSplitter) TextOption {
	return func(p *TextParser) {
		p.splitter = s
	}
}

// NewTextParser creates a text parser with the default splitter.
func NewTextParser(opts ...TextOption) *TextParser {
	p := &TextParser{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(DefaultChunkSize),
			textsplitter.WithChunkOverlap(DefaultChunkOverlap),
		),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse splits the document text into chunk elements.
func (p *TextParser) Parse(ctx context.Context, doc *core.FetchedDocument) ([]core.Element, error) {
	loader := documentloaders.NewText(bytes.NewReader(doc.Content))

	docs, err := loader.LoadAndSplit(ctx, p.splitter)
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
