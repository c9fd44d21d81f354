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
	"context"
	"io"
	"os"
	"strings"

	"github.com/poiesic/inflow/core"
)

// FileSource reads a document from the local filesystem.
type FileSource struct {
	path    string
	docType core.DocumentType
}

var _ core.Source = (*FileSource)(nil)

// NewFileSource creates a source for a local file. Accepts a bare path or a
// file:// URI. The document type is inferred from the extension.
func NewFileSource(p string) *FileSource {
	p = strings.TrimPrefix(p, "file://")
	return &FileSource{path: p, docType: TypeForPath(p)}
}

// WithType overrides the inferred document type.
func (s *FileSource) WithType(t core.DocumentType) *FileSource {
	s.docType = t
	return s
}

// URI returns the file:// URI of the source.
func (s *FileSource) URI() string {
	return "file://" + s.path
}

// Type returns the document type the source yields.
func (s *FileSource) Type() core.DocumentType {
	return s.docType
}

// Open returns a reader over the file contents.
func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(s.path)
}
