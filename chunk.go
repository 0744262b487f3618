package carpe

import "unicode/utf8"

// DefaultChunkSize is the number of characters sent to a single map call.
// It is independent of the paragraph band.
const DefaultChunkSize = 10000

// ParagraphRange is the allowed length of a generated summary, in paragraphs.
type ParagraphRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ChunkPlan describes how content of a given length is processed.
type ChunkPlan struct {
	ChunkSize  int            `json:"chunkSize"`
	Paragraphs ParagraphRange `json:"paragraphs"`
}

// paragraphBands maps content length to summary length. Each band is wider
// than the previous one so summaries grow sub-linearly with the input.
var paragraphBands = []struct {
	below int
	rng   ParagraphRange
}{
	{5000, ParagraphRange{1, 2}},
	{10000, ParagraphRange{2, 3}},
	{20000, ParagraphRange{2, 4}},
	{40000, ParagraphRange{3, 5}},
}

// PlanChunks returns the chunk plan for content of the given length in
// characters. It is pure and total: negative lengths are treated as zero.
func PlanChunks(contentLength int) ChunkPlan {
	plan := ChunkPlan{
		ChunkSize:  DefaultChunkSize,
		Paragraphs: ParagraphRange{3, 6},
	}
	for _, band := range paragraphBands {
		if contentLength < band.below {
			plan.Paragraphs = band.rng
			break
		}
	}
	return plan
}

// Chunk is a contiguous, size-bounded slice of source content.
type Chunk struct {
	Index int // zero-based position
	Total int // number of chunks the content was split into
	Text  string
}

// Part returns the one-based position of the chunk, for prompts.
func (c Chunk) Part() int {
	return c.Index + 1
}

// ContentLength returns the length of s in characters.
func ContentLength(s string) int {
	return utf8.RuneCountInString(s)
}

// SplitChunks splits s into consecutive chunks of at most size characters.
// The final chunk may be shorter. Concatenating the chunk texts in order
// reproduces s exactly. A size of zero or less uses DefaultChunkSize.
func SplitChunks(s string, size int) []Chunk {
	if s == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}

	total := (ContentLength(s) + size - 1) / size
	chunks := make([]Chunk, 0, total)

	start, count := 0, 0
	for i := range s {
		if count == size {
			chunks = append(chunks, Chunk{Index: len(chunks), Total: total, Text: s[start:i]})
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, Chunk{Index: len(chunks), Total: total, Text: s[start:]})

	return chunks
}
