package mock

import (
	"github.com/poiesic/inflow/ai"
)

// Provider is a test double for ai.AIProvider aggregating mock services.
type Provider struct {
	embedder  *Embedder
	captioner *Captioner
}

// NewProvider creates a mock provider with default mock services.
//
// Returns ai.AIProvider interface since it's the primary entry point;
// use MockEmbedder()/MockCaptioner() to reach the concrete types for
// assertions and behavior injection.
func NewProvider() ai.AIProvider {
	return &Provider{
		embedder:  NewEmbedder(),
		captioner: NewCaptioner(),
	}
}

// Embedder returns the mock embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Captioner returns the mock caption service.
func (p *Provider) Captioner() ai.Captioner {
	return p.captioner
}

// MockEmbedder returns the concrete mock embedder for test assertions.
func (p *Provider) MockEmbedder() *Embedder {
	return p.embedder
}

// MockCaptioner returns the concrete mock captioner for test assertions.
func (p *Provider) MockCaptioner() *Captioner {
	return p.captioner
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}
