package mocks

import "context"

// Embedder is a mock implementation of ports.Embedder. Every call
// returns the configured Embedding.
type Embedder struct {
	Embedding []float32
	Calls     []string
	Err       error
}

// NewEmbedder creates a mock embedder returning a fixed vector.
func NewEmbedder(embedding []float32) *Embedder {
	return &Embedder{Embedding: embedding}
}

// Embed generates a vector embedding for the given text.
func (m *Embedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Calls = append(m.Calls, text)
	return m.Embedding, nil
}

// EmbedBatch generates vector embeddings for multiple texts.
func (m *Embedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		m.Calls = append(m.Calls, text)
		result[i] = m.Embedding
	}
	return result, nil
}
