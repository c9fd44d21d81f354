package parse

import (
	"context"
	"fmt"

	"github.com/poiesic/inflow/core"
)

// Parser turns a fetched document into a list of content elements.
// Implementations must be thread-safe for concurrent use.
type Parser interface {
	// Parse produces the document's elements.
	// Failures are reported wrapping ErrParse.
	Parse(ctx context.Context, doc *core.FetchedDocument) ([]core.Element, error)
}

// Router dispatches documents to parsers by their DocumentType tag.
// Registration happens at setup time; lookups are safe for concurrent use
// once registration is complete.
type Router struct {
	parsers map[core.DocumentType]Parser
}

// NewRouter creates an empty parser router.
func NewRouter() *Router {
	return &Router{parsers: make(map[core.DocumentType]Parser)}
}

// DefaultRouter creates a router with the bundled parsers registered
// for their document types.
func DefaultRouter() *Router {
	r := NewRouter()
	r.Register(core.DocumentTypeText, NewTextParser())
	r.Register(core.DocumentTypeHTML, NewHTMLParser())
	r.Register(core.DocumentTypeCSV, NewCSVParser())
	return r
}

// Register associates a parser with a document type, replacing any
// previous registration for that type.
func (r *Router) Register(t core.DocumentType, p Parser) error {
	if p == nil {
		return ErrNilParser
	}
	r.parsers[t] = p
	return nil
}

// Supports reports whether a parser is registered for the document type.
func (r *Router) Supports(t core.DocumentType) bool {
	_, ok := r.parsers[t]
	return ok
}

// Get returns the parser registered for the document type.
// Returns an error wrapping ErrUnsupportedType when none is registered.
func (r *Router) Get(t core.DocumentType) (Parser, error) {
	p, ok := r.parsers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, t)
	}
	return p, nil
}

// elementID derives a deterministic element ID from the document URI,
// the element's position, and its content.
func elementID(doc *core.FetchedDocument, position int, text string) core.ID {
	return core.IDFromContent(fmt.Sprintf("%s#%d:%s", doc.Meta.URI, position, text))
}

// newElement builds an element with the document back-reference populated.
func newElement(doc *core.FetchedDocument, position int, kind core.ElementKind, text string, raw []byte) core.Element {
	return core.Element{
		ID:          elementID(doc, position, text),
		Kind:        kind,
		Text:        text,
		Raw:         raw,
		SourceID:    doc.Meta.SourceID,
		DocumentURI: doc.Meta.URI,
		Metadata:    doc.Meta.Metadata,
	}
}
