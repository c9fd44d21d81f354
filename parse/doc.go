// Package parse turns fetched documents into content elements.
//
// A Router dispatches each document to the parser registered for its
// DocumentType tag. Parsers produce immutable core.Element values carrying
// a back-reference to the originating document; non-textual content (tables,
// images) is emitted as intermediate elements for the enrich package to
// complete before indexing.
//
// The bundled parsers are thin adapters over langchaingo document loaders
// and text splitters; parsing algorithms themselves are not implemented here.
package parse
