package ingest

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// makeText generates n whitespace-separated tokens.
func makeText(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(words, " ")
}

func TestChunkText_WindowOffsets(t *testing.T) {
	tests := []struct {
		name      string
		tokens    int
		chunkSize int
		overlap   int
	}{
		{"no overlap", 100, 25, 0},
		{"typical overlap", 1000, 100, 20},
		{"single window", 50, 100, 10},
		{"last window short", 105, 50, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(makeText(tt.tokens), "book", tt.chunkSize, tt.overlap)

			step := tt.chunkSize - tt.overlap
			for i, c := range chunks {
				wantStart := i * step
				if c.TokenStart != wantStart {
					t.Errorf("chunk %d: TokenStart = %d, want %d", i, c.TokenStart, wantStart)
				}
				if c.ChunkIndex != i {
					t.Errorf("chunk %d: ChunkIndex = %d, want %d", i, c.ChunkIndex, i)
				}
				if c.TokenEnd-c.TokenStart > tt.chunkSize {
					t.Errorf("chunk %d: window spans %d tokens, max %d", i, c.TokenEnd-c.TokenStart, tt.chunkSize)
				}
				if c.TokenEnd <= c.TokenStart {
					t.Errorf("chunk %d: TokenEnd %d <= TokenStart %d", i, c.TokenEnd, c.TokenStart)
				}
			}

			last := chunks[len(chunks)-1]
			if last.TokenEnd != tt.tokens {
				t.Errorf("final window end = %d, want %d", last.TokenEnd, tt.tokens)
			}
		})
	}
}

func TestChunkText_OverlapAtLeastChunkSize(t *testing.T) {
	// overlap >= chunk_size must not loop; behaves as if overlap = 0
	for _, overlap := range []int{50, 80} {
		chunks := ChunkText(makeText(200), "book", 50, overlap)

		if len(chunks) != 4 {
			t.Fatalf("overlap %d: got %d chunks, want 4 non-overlapping windows", overlap, len(chunks))
		}
		for i, c := range chunks {
			if c.TokenStart != i*50 {
				t.Errorf("overlap %d: chunk %d starts at %d, want %d", overlap, i, c.TokenStart, i*50)
			}
		}
	}
}

func TestChunkText_NonPositiveChunkSize(t *testing.T) {
	// chunk_size <= 0 must not loop; yields no chunks
	for _, size := range []int{0, -1, -800} {
		done := make(chan []Chunk, 1)
		go func() {
			done <- ChunkText(makeText(200), "book", size, 100)
		}()

		select {
		case chunks := <-done:
			if len(chunks) != 0 {
				t.Errorf("chunk_size %d: got %d chunks, want 0", size, len(chunks))
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("chunk_size %d: ChunkText did not return", size)
		}
	}
}

func TestChunkText_RelativePositionMonotonic(t *testing.T) {
	rank := map[string]int{PositionEarly: 0, PositionMid: 1, PositionLate: 2}

	chunks := ChunkText(makeText(1000), "book", 60, 15)
	prev := 0
	for i, c := range chunks {
		r, ok := rank[c.RelativePosition]
		if !ok {
			t.Fatalf("chunk %d: unexpected position %q", i, c.RelativePosition)
		}
		if r < prev {
			t.Errorf("chunk %d: position %q regressed", i, c.RelativePosition)
		}
		prev = r
	}
}

func TestChunkText_MobyDickScenario(t *testing.T) {
	// 1500 tokens, chunk_size=800, overlap=100 (step=700):
	// exactly 3 chunks at [0,800), [700,1500), [1400,1500)
	chunks := ChunkText(makeText(1500), "Moby Dick", 800, 100)

	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	want := []struct {
		start, end int
		position   string
	}{
		{0, 800, PositionEarly},
		{700, 1500, PositionMid},
		{1400, 1500, PositionLate},
	}

	for i, w := range want {
		c := chunks[i]
		if c.TokenStart != w.start || c.TokenEnd != w.end {
			t.Errorf("chunk %d: range [%d,%d), want [%d,%d)", i, c.TokenStart, c.TokenEnd, w.start, w.end)
		}
		if c.RelativePosition != w.position {
			t.Errorf("chunk %d: position %q, want %q", i, c.RelativePosition, w.position)
		}
		if c.Book != "Moby Dick" {
			t.Errorf("chunk %d: book %q, want %q", i, c.Book, "Moby Dick")
		}
	}
}

func TestChunkText_EmptyText(t *testing.T) {
	if chunks := ChunkText("", "book", 800, 100); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
	if chunks := ChunkText("   \n\t  ", "book", 800, 100); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace-only text, got %d", len(chunks))
	}
}

func TestChunkText_TextRoundTrip(t *testing.T) {
	chunks := ChunkText("the quick brown fox jumps over the lazy dog", "book", 4, 1)

	for i, c := range chunks {
		wordCount := len(strings.Fields(c.Text))
		if wordCount != c.TokenEnd-c.TokenStart {
			t.Errorf("chunk %d: %d words but range claims %d", i, wordCount, c.TokenEnd-c.TokenStart)
		}
	}
}
