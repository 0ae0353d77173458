package ingest

import "strings"

// Default windowing parameters. Chunks of 500-1000 tokens work well for
// retrieval over narrative text.
const (
	DefaultChunkSize = 800
	DefaultOverlap   = 100
)

// ChunkText splits text into overlapping windows of chunkSize whitespace
// tokens, stepping by chunkSize-overlap. If overlap >= chunkSize the step
// falls back to chunkSize so the walk always makes forward progress.
// Empty text or a non-positive chunkSize yields an empty sequence. Pure
// function of its inputs.
func ChunkText(text, bookTitle string, chunkSize, overlap int) []Chunk {
	if chunkSize <= 0 {
		return nil
	}

	words := strings.Fields(text)
	total := len(words)

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []Chunk
	for i := 0; i < total; i += step {
		end := i + chunkSize
		if end > total {
			end = total
		}

		chunks = append(chunks, Chunk{
			Text:             strings.Join(words[i:end], " "),
			Book:             bookTitle,
			ChunkIndex:       len(chunks),
			RelativePosition: relativePosition(i, total),
			TokenStart:       i,
			TokenEnd:         end,
		})
	}

	return chunks
}

// relativePosition buckets a window start into early/mid/late narrative
// progress using 33% and 66% thresholds over the full token count.
func relativePosition(start, total int) string {
	switch {
	case float64(start) < float64(total)*0.33:
		return PositionEarly
	case float64(start) < float64(total)*0.66:
		return PositionMid
	default:
		return PositionLate
	}
}
