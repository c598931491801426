// Package embed provides the embedding-provider boundary: a batch call
// mapping strings to fixed-dimension vectors and a symmetric call for a
// single query string. Retrieval quality depends on documents and
// queries sharing an embedding space, so a single Embedder instance
// must be used for both sides of a search.
package embed

import "context"

// Embedder maps text to fixed-dimension vectors.
type Embedder interface {
	// EmbedDocuments embeds a batch of document chunks.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a single query string into the same space as
	// EmbedDocuments output.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// ModelID returns the embedding model identifier.
	ModelID() string
}
