package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateDocumentMeta(t *testing.T) {
	testCases := []struct {
		name    string
		meta    DocumentMeta
		wantErr error
	}{
		{
			name: "valid metadata",
			meta: DocumentMeta{URI: "file:///docs/a.txt", Type: DocumentTypeText},
		},
		{
			name:    "empty URI",
			meta:    DocumentMeta{Type: DocumentTypeText},
			wantErr: ErrEmptyURI,
		},
		{
			name:    "empty type",
			meta:    DocumentMeta{URI: "file:///docs/a.txt"},
			wantErr: ErrEmptyDocumentType,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDocumentMeta(tc.meta)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateElement(t *testing.T) {
	sourceID := IDFromContent("file:///docs/a.txt")

	testCases := []struct {
		name    string
		element Element
		wantOK  bool
	}{
		{
			name:    "valid text element",
			element: Element{Kind: ElementKindText, Text: "hello", SourceID: sourceID},
			wantOK:  true,
		},
		{
			name:    "valid intermediate element with raw payload",
			element: Element{Kind: ElementKindImage, Raw: []byte{0x89}, SourceID: sourceID},
			wantOK:  true,
		},
		{
			name:    "empty kind",
			element: Element{Text: "hello", SourceID: sourceID},
		},
		{
			name:    "missing source identifier",
			element: Element{Kind: ElementKindText, Text: "hello"},
		},
		{
			name:    "ready element without text",
			element: Element{Kind: ElementKindText, SourceID: sourceID},
		},
		{
			name:    "intermediate element without payload",
			element: Element{Kind: ElementKindImage, SourceID: sourceID},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateElement(tc.element)
			if tc.wantOK {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidElement)
		})
	}
}

func TestValidateEntry(t *testing.T) {
	sourceID := IDFromContent("file:///docs/a.txt")

	t.Run("valid entry", func(t *testing.T) {
		err := ValidateEntry(&Entry{SourceID: sourceID, Text: "hello"})
		assert.NoError(t, err)
	})

	t.Run("nil entry", func(t *testing.T) {
		err := ValidateEntry(nil)
		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("missing source identifier", func(t *testing.T) {
		err := ValidateEntry(&Entry{Text: "hello"})
		assert.ErrorIs(t, err, ErrInvalidEntry)
	})

	t.Run("empty text", func(t *testing.T) {
		err := ValidateEntry(&Entry{SourceID: sourceID})
		assert.ErrorIs(t, err, ErrInvalidEntry)
	})
}
