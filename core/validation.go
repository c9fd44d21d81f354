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


package core

import (
	"fmt"
)

// ValidateDocumentMeta validates document metadata according to domain rules.
//
// Validation rules:
//   - URI must not be empty
//   - Type must not be empty
//
// NOT validated:
//   - SourceID (derived from the URI when metadata comes from a source)
//   - Metadata (optional)
func ValidateDocumentMeta(meta DocumentMeta) error {
	if meta.URI == "" {
		return fmt.Errorf("%w: %w", ErrInvalidElement, ErrEmptyURI)
	}

	if meta.Type == "" {
		return fmt.Errorf("%w: %w", ErrInvalidElement, ErrEmptyDocumentType)
	}

	return nil
}

// ValidateElement validates an Element according to domain rules.
//
// Validation rules:
//   - Kind must not be empty
//   - SourceID must be set (elements always carry a document back-reference)
//   - Ready elements must have text; intermediate elements must have a raw payload
func ValidateElement(e Element) error {
	if e.Kind == "" {
		return fmt.Errorf("%w: kind is empty", ErrInvalidElement)
	}

	if e.SourceID == 0 {
		return fmt.Errorf("%w: missing source identifier", ErrInvalidElement)
	}

	if e.Intermediate() {
		if len(e.Raw) == 0 && e.Text == "" {
			return fmt.Errorf("%w: intermediate element has no payload", ErrInvalidElement)
		}
		return nil
	}

	if e.Text == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidElement)
	}

	return nil
}

// ValidateEntry validates an Entry according to domain rules.
//
// Validation rules:
//   - SourceID must be set (entries are removed by source identifier on re-ingest)
//   - Text must not be empty
//
// NOT validated:
//   - Vector (can be empty when no embedder is configured)
//   - InsertedAt (populated by the store)
func ValidateEntry(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidEntry)
	}

	if entry.SourceID == 0 {
		return fmt.Errorf("%w: missing source identifier", ErrInvalidEntry)
	}

	if entry.Text == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidEntry)
	}

	return nil
}
