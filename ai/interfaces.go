package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Captioner turns non-textual content into indexable text.
// Implementations must be thread-safe for concurrent use.
type Captioner interface {
	// CaptionImage produces a textual description of image bytes.
	// mimeType identifies the image format (e.g. "image/png").
	// Returns an error if caption generation fails.
	CaptionImage(ctx context.Context, mimeType string, data []byte) (string, error)

	// SummarizeTable produces a textual summary of table markup
	// (HTML or CSV fragment) suitable for embedding and search.
	// Returns an error if summary generation fails.
	SummarizeTable(ctx context.Context, markup string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and Captioner instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Captioner returns the caption/summary service.
	// The returned Captioner is safe for concurrent use.
	Captioner() Captioner

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
