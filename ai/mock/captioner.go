package mock

import (
	"context"
	"fmt"
)

// Captioner is a test double for ai.Captioner.
// It allows custom behavior injection via function fields.
type Captioner struct {
	// CaptionImageFunc is called by CaptionImage if set.
	// If nil, uses default deterministic behavior.
	CaptionImageFunc func(ctx context.Context, mimeType string, data []byte) (string, error)

	// SummarizeTableFunc is called by SummarizeTable if set.
	// If nil, uses default deterministic behavior.
	SummarizeTableFunc func(ctx context.Context, markup string) (string, error)

	callCount int
}

// NewCaptioner creates a mock captioner with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewCaptioner() *Captioner {
	return &Captioner{}
}

// CaptionImage returns a deterministic caption derived from the payload size.
func (m *Captioner) CaptionImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	m.callCount++

	if m.CaptionImageFunc != nil {
		return m.CaptionImageFunc(ctx, mimeType, data)
	}

	return fmt.Sprintf("image caption (%s, %d bytes)", mimeType, len(data)), nil
}

// SummarizeTable returns a deterministic summary derived from the markup length.
func (m *Captioner) SummarizeTable(ctx context.Context, markup string) (string, error) {
	m.callCount++

	if m.SummarizeTableFunc != nil {
		return m.SummarizeTableFunc(ctx, markup)
	}

	return fmt.Sprintf("table summary (%d chars)", len(markup)), nil
}

// CallCount returns the number of times any method was called.
func (m *Captioner) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *Captioner) Reset() {
	m.callCount = 0
	m.CaptionImageFunc = nil
	m.SummarizeTableFunc = nil
}
