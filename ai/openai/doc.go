// Package openai provides ai service implementations backed by
// OpenAI-compatible APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// Embeddings use the configured embedding model; image captioning and
// table summarization use a vision-capable chat model. All constructors
// return ai package interfaces to keep callers decoupled from this
// implementation.
package openai
