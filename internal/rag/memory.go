package rag

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a brute-force in-memory VectorStore. It backs ephemeral
// runs without a Milvus server and deterministic tests. Ties in score
// break by insertion order.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	records   []ChunkRecord
}

// NewMemoryStore creates an empty in-memory store for vectors of the
// given dimension.
func NewMemoryStore(dimension int) (*MemoryStore, error) {
	if dimension <= 0 {
		return nil, ErrInvalidDimension
	}
	return &MemoryStore{dimension: dimension}, nil
}

// Reset discards all stored records.
func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// Insert appends chunk records, validating embedding dimensions.
func (s *MemoryStore) Insert(ctx context.Context, records []ChunkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, record := range records {
		if len(record.Embedding) != s.dimension {
			return fmt.Errorf("%w: expected %d, got %d at record %d",
				ErrInvalidDimension, s.dimension, len(record.Embedding), i)
		}
	}

	s.records = append(s.records, records...)
	return nil
}

// Flush is a no-op; all data lives in memory.
func (s *MemoryStore) Flush(ctx context.Context) error {
	return nil
}

// Search scans every record matching the book filter and returns the
// topK by descending cosine similarity.
func (s *MemoryStore) Search(ctx context.Context, queryVector []float32, bookFilter string, topK int) ([]Evidence, error) {
	if len(queryVector) != s.dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidDimension, s.dimension, len(queryVector))
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filter := strings.ToLower(bookFilter)

	matched := make([]Evidence, 0, len(s.records))
	for _, record := range s.records {
		if filter != "" && !strings.Contains(strings.ToLower(record.Metadata.Book), filter) {
			continue
		}
		matched = append(matched, Evidence{
			Text:     record.Text,
			Metadata: record.Metadata,
			Score:    cosineSimilarity(queryVector, record.Embedding),
		})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Score > matched[j].Score })

	if topK < len(matched) {
		matched = matched[:topK]
	}

	return matched, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// cosineSimilarity computes the angular similarity of two vectors.
// Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
