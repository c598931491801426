package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"
)

const mockDimensions = 128

// MockEmbedder is a deterministic, offline Embedder for tests. It hashes
// tokens into a fixed-dimension bag-of-words vector, so identical texts
// embed identically and texts sharing vocabulary land close together.
type MockEmbedder struct {
	mu sync.Mutex

	// Err, when set, is returned by every call. Used to simulate
	// embedding-service failures.
	Err error

	// DocumentCalls and QueryCalls record inputs for assertions.
	DocumentCalls [][]string
	QueryCalls    []string
}

// NewMockEmbedder creates a MockEmbedder.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

func (m *MockEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.DocumentCalls = append(m.DocumentCalls, texts)
	err := m.Err
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = hashEmbed(t)
	}
	return out, nil
}

func (m *MockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.QueryCalls = append(m.QueryCalls, text)
	err := m.Err
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return hashEmbed(text), nil
}

func (m *MockEmbedder) ModelID() string {
	return "mock-embed"
}

// hashEmbed produces an L2-normalized bag-of-words vector.
func hashEmbed(text string) []float32 {
	vec := make([]float32, mockDimensions)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(strings.Trim(tok, ".,:;!?()[]#*")))
		vec[h.Sum32()%mockDimensions]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec
}
