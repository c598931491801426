package rag

import (
	"strings"
	"testing"
)

// sampleLesson builds markdown-ish lesson text longer than several chunks.
func sampleLesson() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteString("\n## Section heading\n\n")
		for j := 0; j < 4; j++ {
			b.WriteString("Goroutines are lightweight threads managed by the Go runtime. ")
			b.WriteString("Channels let goroutines communicate without explicit locks. ")
			b.WriteString("The select statement waits on multiple channel operations.\n")
		}
	}
	return b.String()
}

// reconstruct concatenates chunks with overlaps stripped.
func reconstruct(chunks []Chunk) string {
	var b strings.Builder
	for _, ch := range chunks {
		b.WriteString(ch.Text[ch.Overlap:])
	}
	return b.String()
}

func TestSplit_Lossless(t *testing.T) {
	text := sampleLesson()
	chunks := NewChunker().Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for %d bytes, got %d", len(text), len(chunks))
	}
	if got := reconstruct(chunks); got != text {
		t.Fatalf("reconstruction mismatch: got %d bytes, want %d", len(got), len(text))
	}
}

func TestSplit_SizeBound(t *testing.T) {
	c := NewChunker()
	chunks := c.Split(sampleLesson())

	for i, ch := range chunks {
		if len(ch.Text) > c.ChunkSize+c.Overlap {
			t.Fatalf("chunk %d is %d bytes, exceeds %d", i, len(ch.Text), c.ChunkSize+c.Overlap)
		}
	}
}

func TestSplit_OverlapBetweenConsecutiveChunks(t *testing.T) {
	c := NewChunker()
	chunks := c.Split(sampleLesson())

	for i := 1; i < len(chunks); i++ {
		if chunks[i].Overlap == 0 {
			t.Fatalf("chunk %d has no overlap with its predecessor", i)
		}
		if chunks[i].Overlap > c.Overlap {
			t.Fatalf("chunk %d overlap %d exceeds configured %d", i, chunks[i].Overlap, c.Overlap)
		}
		prefix := chunks[i].Text[:chunks[i].Overlap]
		if !strings.HasSuffix(chunks[i-1].Text, prefix) {
			t.Fatalf("chunk %d overlap is not a copy of the previous chunk's tail", i)
		}
	}
}

func TestSplit_NeverEmptyChunk(t *testing.T) {
	inputs := []string{
		sampleLesson(),
		"\n\n\n## \n\n",
		"short",
		strings.Repeat(". ", 400),
	}
	for _, text := range inputs {
		for i, ch := range NewChunker().Split(text) {
			if ch.Text == "" {
				t.Fatalf("empty chunk %d for input %q...", i, text[:min(20, len(text))])
			}
		}
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	text := "A single short paragraph about interfaces."
	chunks := NewChunker().Split(text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text || chunks[0].Overlap != 0 {
		t.Fatalf("unexpected chunk: %+v", chunks[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	if chunks := NewChunker().Split(""); chunks != nil {
		t.Fatalf("expected nil for empty text, got %d chunks", len(chunks))
	}
}

func TestSplit_PrefersHeadingBoundaries(t *testing.T) {
	// Two sections, each under the chunk size: the split should land on
	// the heading, not mid-paragraph.
	section := strings.Repeat("Interfaces describe behavior. ", 12)
	text := "\n## First\n" + section + "\n## Second\n" + section

	chunks := NewChunker().Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected a split, got %d chunks", len(chunks))
	}
	if !strings.Contains(chunks[1].Text, "\n## Second\n") {
		t.Fatalf("second chunk does not start a section: %q", chunks[1].Text[:40])
	}
}

func TestSplit_NoSeparatorsFallsBackToHardCut(t *testing.T) {
	text := strings.Repeat("x", 1200)
	c := NewChunker()
	chunks := c.Split(text)

	if len(chunks) < 3 {
		t.Fatalf("expected hard cuts, got %d chunks", len(chunks))
	}
	if got := reconstruct(chunks); got != text {
		t.Fatal("hard-cut reconstruction mismatch")
	}
}
