package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/abhisek/studyloop/internal/embed"
)

// Index is an ephemeral in-memory vector index over one lesson's
// chunks. It lives for a single question-answering request and is never
// persisted. The embedder that built it also embeds the queries, which
// keeps documents and queries in one embedding space.
type Index struct {
	embedder embed.Embedder
	chunks   []Chunk
	vectors  [][]float32
}

// Result is one retrieved chunk with its similarity score.
type Result struct {
	Chunk Chunk
	Score float64
}

// BuildIndex embeds the chunks and builds an index over them.
func BuildIndex(ctx context.Context, embedder embed.Embedder, chunks []Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("build index: no chunks")
	}

	vectors, err := embedder.EmbedDocuments(ctx, Texts(chunks))
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("build index: %d vectors for %d chunks", len(vectors), len(chunks))
	}

	return &Index{embedder: embedder, chunks: chunks, vectors: vectors}, nil
}

// Query returns up to k chunks ordered by descending cosine similarity
// to text. Ties break on chunk position, so results are deterministic
// for a fixed embedder and chunk set.
func (ix *Index) Query(ctx context.Context, text string, k int) ([]Result, error) {
	qv, err := ix.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	type scored struct {
		pos   int
		score float64
	}
	all := make([]scored, len(ix.vectors))
	for i, v := range ix.vectors {
		all[i] = scored{pos: i, score: cosineSimilarity(qv, v)}
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score > all[j].score
		}
		return all[i].pos < all[j].pos
	})

	if k > len(all) {
		k = len(all)
	}
	results := make([]Result, k)
	for i := 0; i < k; i++ {
		results[i] = Result{Chunk: ix.chunks[all[i].pos], Score: all[i].score}
	}
	return results, nil
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
