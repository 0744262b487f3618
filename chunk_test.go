package carpe_test

import (
	"strings"
	"testing"

	"github.com/destiner/carpe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanChunks(t *testing.T) {
	t.Parallel()

	t.Run("matches bands at boundaries", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			length int
			want   carpe.ParagraphRange
		}{
			{0, carpe.ParagraphRange{Min: 1, Max: 2}},
			{4999, carpe.ParagraphRange{Min: 1, Max: 2}},
			{5000, carpe.ParagraphRange{Min: 2, Max: 3}},
			{9999, carpe.ParagraphRange{Min: 2, Max: 3}},
			{10000, carpe.ParagraphRange{Min: 2, Max: 4}},
			{12345, carpe.ParagraphRange{Min: 2, Max: 4}},
			{19999, carpe.ParagraphRange{Min: 2, Max: 4}},
			{20000, carpe.ParagraphRange{Min: 3, Max: 5}},
			{39999, carpe.ParagraphRange{Min: 3, Max: 5}},
			{40000, carpe.ParagraphRange{Min: 3, Max: 6}},
			{1_000_000, carpe.ParagraphRange{Min: 3, Max: 6}},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, carpe.PlanChunks(tt.length).Paragraphs, "length %d", tt.length)
		}
	})

	t.Run("chunk size is independent of length", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, carpe.DefaultChunkSize, carpe.PlanChunks(10).ChunkSize)
		assert.Equal(t, carpe.DefaultChunkSize, carpe.PlanChunks(100000).ChunkSize)
	})

	t.Run("paragraph band is monotonic in length", func(t *testing.T) {
		t.Parallel()

		prev := carpe.PlanChunks(0).Paragraphs
		for n := 0; n <= 60000; n += 250 {
			cur := carpe.PlanChunks(n).Paragraphs
			assert.GreaterOrEqual(t, cur.Min, prev.Min, "min at %d", n)
			assert.GreaterOrEqual(t, cur.Max, prev.Max, "max at %d", n)
			prev = cur
		}
	})

	t.Run("treats negative length as empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, carpe.ParagraphRange{Min: 1, Max: 2}, carpe.PlanChunks(-1).Paragraphs)
	})
}

func TestSplitChunks(t *testing.T) {
	t.Parallel()

	t.Run("chunk count is ceiling of length over size", func(t *testing.T) {
		t.Parallel()

		for _, n := range []int{1, 9, 10, 11, 29, 30, 31} {
			chunks := carpe.SplitChunks(strings.Repeat("a", n), 10)
			assert.Len(t, chunks, (n+9)/10, "length %d", n)
		}
	})

	t.Run("concatenation reproduces the content", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("The quick brown fox. ", 1234)

		chunks := carpe.SplitChunks(content, 1000)

		var sb strings.Builder
		for _, c := range chunks {
			sb.WriteString(c.Text)
		}
		assert.Equal(t, content, sb.String())
	})

	t.Run("tags chunks with index and total", func(t *testing.T) {
		t.Parallel()

		chunks := carpe.SplitChunks(strings.Repeat("x", 12345), carpe.DefaultChunkSize)

		require.Len(t, chunks, 2)
		assert.Equal(t, 0, chunks[0].Index)
		assert.Equal(t, 1, chunks[1].Index)
		assert.Equal(t, 2, chunks[0].Total)
		assert.Equal(t, 2, chunks[1].Part())
		assert.Len(t, chunks[0].Text, 10000)
		assert.Len(t, chunks[1].Text, 2345)
	})

	t.Run("never splits a multibyte character", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("日本語", 7)

		chunks := carpe.SplitChunks(content, 4)

		require.Len(t, chunks, 6)
		for _, c := range chunks[:5] {
			assert.Equal(t, 4, carpe.ContentLength(c.Text))
		}
		assert.Equal(t, 1, carpe.ContentLength(chunks[5].Text))
	})

	t.Run("returns nil for empty content", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, carpe.SplitChunks("", 10))
	})

	t.Run("uses default size for non-positive size", func(t *testing.T) {
		t.Parallel()

		chunks := carpe.SplitChunks(strings.Repeat("a", carpe.DefaultChunkSize+1), 0)

		assert.Len(t, chunks, 2)
	})
}
