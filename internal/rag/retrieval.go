package rag

import (
	"context"
	"fmt"
)

// Retriever turns a claim into ranked evidence from the vector store.
type Retriever struct {
	embedder Embedder
	store    VectorStore
}

// NewRetriever creates a new Retriever instance.
func NewRetriever(embedder Embedder, store VectorStore) (*Retriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("vector store cannot be nil")
	}

	return &Retriever{
		embedder: embedder,
		store:    store,
	}, nil
}

// BuildQueryText contextualizes a claim with its character, steering the
// embedding toward character-specific passages.
func BuildQueryText(claimText, character string) string {
	if character == "" {
		return claimText
	}
	return fmt.Sprintf("%s: %s", character, claimText)
}

// RetrieveEvidence embeds the contextualized claim and returns the topK
// most similar chunks from the given book. Every call re-embeds and
// re-queries; there is no caching. An unmatched book filter is not an
// error, just an empty result, which the caller handles as "no evidence".
func (r *Retriever) RetrieveEvidence(
	ctx context.Context,
	claimText, bookTitle, character string,
	topK int,
) ([]Evidence, error) {
	if claimText == "" {
		return nil, fmt.Errorf("claim text cannot be empty")
	}
	if topK <= 0 {
		return nil, fmt.Errorf("topK must be positive, got %d", topK)
	}

	queryText := BuildQueryText(claimText, character)

	embeddingRecords, err := r.embedder.Embed(ctx, []string{queryText})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddingRecords) == 0 {
		return nil, fmt.Errorf("no embedding generated for query")
	}

	evidence, err := r.store.Search(ctx, embeddingRecords[0].Embedding, bookTitle, topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search for evidence: %w", err)
	}

	return evidence, nil
}
