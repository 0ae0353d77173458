package rag

import (
	"context"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/ingest"
)

// ChunkMetadata is the structured blob persisted alongside each stored
// chunk and returned with retrieved evidence.
type ChunkMetadata struct {
	Book             string `json:"book"`
	ChunkIndex       int    `json:"chunk_index"`
	RelativePosition string `json:"relative_position"`
	TokenStart       int    `json:"token_start"`
	TokenEnd         int    `json:"token_end"`
}

// ChunkRecord is a chunk paired with its embedding, ready for insertion.
type ChunkRecord struct {
	Text      string        `json:"text"`
	Embedding []float32     `json:"embedding"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// Evidence is a retrieved chunk with its similarity score. Score is
// cosine similarity in [-1, 1], higher = more similar. Evidence is
// produced only by retrieval, never persisted.
type Evidence struct {
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
	Score    float32       `json:"score"`
}

// VectorStore defines the interface for persistent chunk storage and
// similarity-ranked lookup filtered by book.
type VectorStore interface {
	// Reset discards every stored chunk across all books. A rebuild is
	// destructive and non-incremental: callers Reset then Insert.
	Reset(ctx context.Context) error

	// Insert adds chunk records. Every embedding must match the store's
	// configured dimension; a mismatch is a hard error.
	Insert(ctx context.Context, records []ChunkRecord) error

	// Flush ensures all pending data is persisted.
	Flush(ctx context.Context) error

	// Search returns at most topK records whose book title contains
	// bookFilter (case-insensitive), ordered by descending cosine
	// similarity. An empty or unmatched collection yields an empty
	// result, not an error.
	Search(ctx context.Context, queryVector []float32, bookFilter string, topK int) ([]Evidence, error)

	// Close releases resources and closes connections.
	Close() error
}

// MetadataFor builds the persisted metadata blob for a chunk.
func MetadataFor(c ingest.Chunk) ChunkMetadata {
	return ChunkMetadata{
		Book:             c.Book,
		ChunkIndex:       c.ChunkIndex,
		RelativePosition: c.RelativePosition,
		TokenStart:       c.TokenStart,
		TokenEnd:         c.TokenEnd,
	}
}
