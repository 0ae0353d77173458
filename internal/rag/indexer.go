package rag

import (
	"context"
	"fmt"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/ingest"
)

// BuildOptions provides configuration for index building
type BuildOptions struct {
	// BatchSize determines how many chunks to embed per API round trip.
	// It trades memory for round-trip count; correctness does not depend
	// on it.
	BatchSize int
}

// DefaultBuildOptions returns sensible defaults for index building
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		BatchSize: 100,
	}
}

// BuildIndex embeds book chunks and stores them in the vector store.
// The build is a full replace: all previously stored chunks for every
// book are discarded before the new set is inserted. Returns the number
// of chunks inserted.
//
// Cancellation is best-effort between batches; chunks already inserted
// when the context is cancelled are retained, not rolled back.
func BuildIndex(
	ctx context.Context,
	chunks []ingest.Chunk,
	embedder Embedder,
	store VectorStore,
	opts BuildOptions,
) (int, error) {
	if embedder == nil {
		return 0, fmt.Errorf("embedder cannot be nil")
	}
	if store == nil {
		return 0, fmt.Errorf("vector store cannot be nil")
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBuildOptions().BatchSize
	}

	if err := store.Reset(ctx); err != nil {
		return 0, fmt.Errorf("failed to reset vector store: %w", err)
	}

	inserted := 0
	for batchStart := 0; batchStart < len(chunks); batchStart += batchSize {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		batchEnd := batchStart + batchSize
		if batchEnd > len(chunks) {
			batchEnd = len(chunks)
		}

		batch := chunks[batchStart:batchEnd]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		embeddingRecords, err := embedder.Embed(ctx, texts)
		if err != nil {
			return inserted, fmt.Errorf("failed to embed batch starting at %d: %w", batchStart, err)
		}

		records := make([]ChunkRecord, len(batch))
		for i, chunk := range batch {
			records[i] = ChunkRecord{
				Text:      chunk.Text,
				Embedding: embeddingRecords[i].Embedding,
				Metadata:  MetadataFor(chunk),
			}
		}

		if err := store.Insert(ctx, records); err != nil {
			return inserted, fmt.Errorf("failed to insert batch starting at %d: %w", batchStart, err)
		}

		inserted += len(records)
	}

	if err := store.Flush(ctx); err != nil {
		return inserted, fmt.Errorf("failed to flush store: %w", err)
	}

	return inserted, nil
}
