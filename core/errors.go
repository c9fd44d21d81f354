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
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrSource indicates a failure fetching document bytes from a source.
	ErrSource = errors.New("source fetch failed")

	// ErrNoSource indicates document metadata with no fetchable source attached.
	ErrNoSource = errors.New("document has no source")

	// ErrEmptyURI indicates a source or document with an empty URI.
	ErrEmptyURI = errors.New("URI cannot be empty")

	// ErrEmptyDocumentType indicates a document with no type tag.
	ErrEmptyDocumentType = errors.New("document type cannot be empty")

	// ErrInvalidElement indicates an Element failed validation.
	ErrInvalidElement = errors.New("invalid element")

	// ErrInvalidEntry indicates an Entry failed validation.
	ErrInvalidEntry = errors.New("invalid entry")
)

// sourceErr wraps an underlying fetch failure with the ErrSource sentinel so
// callers can classify it with errors.Is.
func sourceErr(err error) error {
	return fmt.Errorf("%w: %v", ErrSource, err)
}
