// Package rag answers free-form student questions about a lesson by
// retrieval-augmented generation over the lesson's own generated text:
// chunk, embed, retrieve, then ground the answer in what was retrieved.
package rag

import "strings"

// Chunk is one retrieval unit: a contiguous slice of the source text.
type Chunk struct {
	// Text is the chunk content, including the leading overlap.
	Text string

	// Overlap is the number of leading bytes copied from the previous
	// chunk's tail. Zero for the first chunk. Concatenating all chunks
	// with their overlaps stripped reconstructs the source exactly.
	Overlap int
}

// defaultSeparators in priority order: markdown heading, blank line,
// line break, sentence end. Splitting prefers the strongest boundary
// that still yields segments under the target size.
var defaultSeparators = []string{"\n## ", "\n\n", "\n", ". "}

// Chunker splits lesson text into overlapping passages along semantic
// boundaries.
type Chunker struct {
	// ChunkSize is the target maximum chunk length in bytes, excluding
	// the overlap seed.
	ChunkSize int

	// Overlap is the number of trailing bytes of a chunk repeated at
	// the start of the next one.
	Overlap int

	separators []string
}

// NewChunker returns a Chunker with the standard 500/50 configuration.
func NewChunker() *Chunker {
	return &Chunker{
		ChunkSize:  500,
		Overlap:    50,
		separators: defaultSeparators,
	}
}

// Split chunks text. It never returns an empty chunk and never drops
// characters: stripping each chunk's overlap and concatenating the rest
// yields the input.
func (c *Chunker) Split(text string) []Chunk {
	if text == "" {
		return nil
	}

	segments := c.split(text, c.separators)
	return c.merge(segments)
}

// split recursively cuts text at the strongest separator available,
// falling back to weaker ones for segments still over the target size.
// Segments concatenate back to the input.
func (c *Chunker) split(text string, seps []string) []string {
	if len(text) <= c.ChunkSize {
		return []string{text}
	}
	if len(seps) == 0 {
		return hardSplit(text, c.ChunkSize)
	}

	parts := splitKeep(text, seps[0])
	if len(parts) == 1 {
		return c.split(text, seps[1:])
	}

	var out []string
	for _, p := range parts {
		if len(p) > c.ChunkSize {
			out = append(out, c.split(p, seps[1:])...)
		} else {
			out = append(out, p)
		}
	}
	return out
}

// splitKeep splits text on sep without losing it. Separators that start
// a line ("\n## ", "\n\n", "\n") stay attached to the segment they
// open; the sentence separator ". " stays attached to the sentence it
// closes.
func splitKeep(text, sep string) []string {
	raw := strings.Split(text, sep)
	if len(raw) == 1 {
		return raw
	}

	attachToNext := strings.HasPrefix(sep, "\n")

	out := make([]string, 0, len(raw))
	for i, r := range raw {
		switch {
		case attachToNext && i > 0:
			r = sep + r
		case !attachToNext && i < len(raw)-1:
			r = r + sep
		}
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// hardSplit cuts text into fixed-size windows. Last resort for text
// with no usable separator.
func hardSplit(text string, size int) []string {
	var out []string
	for len(text) > size {
		out = append(out, text[:size])
		text = text[size:]
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

// merge packs consecutive segments into chunks up to ChunkSize, seeding
// each chunk after the first with the previous chunk's tail. The seed
// is not counted against the size budget, so a chunk can reach
// ChunkSize + Overlap bytes.
func (c *Chunker) merge(segments []string) []Chunk {
	var chunks []Chunk
	var b strings.Builder
	overlap := 0

	flush := func() {
		if b.Len() > overlap {
			chunks = append(chunks, Chunk{Text: b.String(), Overlap: overlap})
		}
		b.Reset()
	}

	for _, seg := range segments {
		if seg == "" {
			continue
		}
		if b.Len()-overlap > 0 && b.Len()-overlap+len(seg) > c.ChunkSize {
			prevTail := tail(b.String(), c.Overlap)
			flush()
			overlap = len(prevTail)
			b.WriteString(prevTail)
		}
		b.WriteString(seg)
	}
	flush()

	return chunks
}

// tail returns up to n trailing bytes of s.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// Texts extracts the chunk texts in order.
func Texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, ch := range chunks {
		out[i] = ch.Text
	}
	return out
}
