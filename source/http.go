package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/poiesic/inflow/core"
)

// HTTPSource fetches a document over HTTP or HTTPS.
type HTTPSource struct {
	uri     string
	docType core.DocumentType
	client  *http.Client
}

var _ core.Source = (*HTTPSource)(nil)

// NewHTTPSource creates a source for an http:// or https:// URI. The document
// type is inferred from the URL path extension; pass a nil client to use
// http.DefaultClient.
func NewHTTPSource(uri string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	docType := core.DocumentTypeText
	if u, err := url.Parse(uri); err == nil {
		docType = TypeForPath(u.Path)
	}
	return &HTTPSource{uri: uri, docType: docType, client: client}
}

// WithType overrides the inferred document type.
func (s *HTTPSource) WithType(t core.DocumentType) *HTTPSource {
	s.docType = t
	return s
}

// URI returns the identifying URI of the source.
func (s *HTTPSource) URI() string {
	return s.uri
}

// Type returns the document type the source yields.
func (s *HTTPSource) Type() core.DocumentType {
	return s.docType
}

// Open performs a GET request and returns the response body.
func (s *HTTPSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s from %s", ErrBadStatus, resp.Status, s.uri)
	}
	return resp.Body, nil
}
