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


package source

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/poiesic/inflow/core"
)

// Resolver maps URIs to source implementations by scheme. Bare paths and
// file:// URIs resolve to file sources; s3:// URIs require a configured
// object store client.
type Resolver struct {
	httpClient *http.Client
	objStore   ObjectStore
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient sets the client used for http and https sources.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) {
		r.httpClient = c
	}
}

// WithObjectStore sets the client used for s3 sources.
func WithObjectStore(s ObjectStore) ResolverOption {
	return func(r *Resolver) {
		r.objStore = s
	}
}

// NewResolver creates a resolver with the given options applied.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a source for the given URI.
func (r *Resolver) Resolve(uri string) (core.Source, error) {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return NewHTTPSource(uri, r.httpClient), nil
	case strings.HasPrefix(uri, "s3://"):
		if r.objStore == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoObjectStore, uri)
		}
		return NewS3Source(uri, r.objStore)
	case strings.HasPrefix(uri, "file://"), !strings.Contains(uri, "://"):
		return NewFileSource(uri), nil
	default:
		scheme, _, _ := strings.Cut(uri, "://")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

// ResolveAll resolves each URI, returning metadata ready for ingestion.
func (r *Resolver) ResolveAll(uris []string) ([]core.DocumentMeta, error) {
	metas := make([]core.DocumentMeta, 0, len(uris))
	for _, uri := range uris {
		src, err := r.Resolve(uri)
		if err != nil {
			return nil, err
		}
		metas = append(metas, core.MetaFromSource(src))
	}
	return metas, nil
}
