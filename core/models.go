package core

//go:generate go run ../cmd/musgen

import (
	"context"
	"encoding/binary"
	"io"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical content
// produces identical IDs across runs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocumentType is a stable tag identifying the format of a source document.
// Parsers register against document types; dispatch never uses reflection.
type DocumentType string

const (
	DocumentTypeText DocumentType = "text"
	DocumentTypeHTML DocumentType = "html"
	DocumentTypeCSV  DocumentType = "csv"
)

// Source is a fetchable origin of document bytes.
// Implementations must be safe for concurrent use.
type Source interface {
	// URI returns the identifying URI of the source.
	URI() string

	// Type returns the document type the source yields.
	Type() DocumentType

	// Open returns a reader over the raw document bytes.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// DocumentMeta identifies a document to be ingested and how to fetch it.
// The SourceID is the stable key used for upsert-by-replacement: re-ingesting
// a document removes every store entry carrying the same SourceID first.
type DocumentMeta struct {
	URI      string
	Type     DocumentType
	SourceID ID
	Metadata map[string]string

	source Source
}

// MetaFromSource derives document metadata from a source.
func MetaFromSource(s Source) DocumentMeta {
	return DocumentMeta{
		URI:      s.URI(),
		Type:     s.Type(),
		SourceID: IDFromContent(s.URI()),
		source:   s,
	}
}

// Fetch retrieves the raw document bytes from the underlying source.
// Returns an error wrapping ErrSource if the source cannot be read.
func (m DocumentMeta) Fetch(ctx context.Context) (*FetchedDocument, error) {
	if m.source == nil {
		return nil, ErrNoSource
	}

	rc, err := m.source.Open(ctx)
	if err != nil {
		return nil, sourceErr(err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, sourceErr(err)
	}

	return &FetchedDocument{Meta: m, Content: content}, nil
}

// FetchedDocument is a document whose raw bytes have been retrieved and are
// ready for parsing.
type FetchedDocument struct {
	Meta    DocumentMeta
	Content []byte
}

// ElementKind is a stable tag identifying the kind of a parsed content unit.
// Enrichers register against element kinds.
type ElementKind string

const (
	ElementKindText  ElementKind = "text"
	ElementKindTitle ElementKind = "title"
	ElementKindTable ElementKind = "table"
	ElementKindImage ElementKind = "image"
)

// Intermediate reports whether elements of this kind require an enrichment
// pass (captioning, summarization) before they can be converted into entries.
func (k ElementKind) Intermediate() bool {
	switch k {
	case ElementKindImage, ElementKindTable:
		return true
	default:
		return false
	}
}

// Element is an atomic parsed content unit derived from a document.
// Elements are immutable once produced by a parser or enricher; enrichment
// yields new elements rather than mutating existing ones.
type Element struct {
	ID          ID
	Kind        ElementKind
	Text        string
	Raw         []byte // raw payload for intermediate kinds (image bytes, table markup)
	SourceID    ID     // back-reference to the originating document
	DocumentURI string
	Metadata    map[string]string
}

// Intermediate reports whether the element still needs enrichment before
// it is indexable.
func (e Element) Intermediate() bool {
	return e.Kind.Intermediate()
}

// Entry is the store-ready representation of an element after conversion,
// carrying the embedding vector used for semantic search.
type Entry struct {
	ID          ID
	SourceID    ID
	DocumentURI string
	Kind        ElementKind
	Text        string
	Vector      []float32
	Metadata    map[string]string
	InsertedAt  time.Time
}
