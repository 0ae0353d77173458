package rag

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// Common errors for Milvus operations
var (
	ErrInvalidDimension = errors.New("invalid vector dimension")
	ErrConnectionFailed = errors.New("failed to connect to Milvus")
	ErrInsertFailed     = errors.New("failed to insert records")
	ErrSearchFailed     = errors.New("failed to search vectors")
)

// MilvusConfig holds configuration for Milvus connection and collection
type MilvusConfig struct {
	Address        string // Milvus server address (e.g., "localhost:19530")
	CollectionName string // Name of the collection
	Dimension      int    // Vector dimension (must match the embedder's output)
	IndexType      string // Index type (default: "HNSW")
	MetricType     string // Similarity metric (default: "COSINE")

	// HNSW index parameters
	M              int // HNSW M parameter (default: 16)
	EfConstruction int // HNSW efConstruction (default: 256)
}

// DefaultMilvusConfig returns default configuration from environment variables
func DefaultMilvusConfig() MilvusConfig {
	address := os.Getenv("MILVUS_ADDRESS")
	if address == "" {
		address = "localhost:19530"
	}

	collection := os.Getenv("MILVUS_COLLECTION")
	if collection == "" {
		collection = "book_chunks"
	}

	_, dimension := EmbedderConfigFromEnv()

	return MilvusConfig{
		Address:        address,
		CollectionName: collection,
		Dimension:      dimension,
		IndexType:      "HNSW",
		MetricType:     "COSINE",
		M:              16,
		EfConstruction: 256,
	}
}

// MilvusStore implements VectorStore using Milvus. Rebuilds are
// destructive: Reset drops the whole collection, so a search issued
// during a rebuild may observe a partially repopulated collection.
// The intended workload is offline rebuild followed by read-only serving.
type MilvusStore struct {
	client client.Client
	config MilvusConfig
}

// NewMilvusStore connects to Milvus and ensures the book_chunks
// collection exists with the expected schema. A connection failure here
// is fatal for the caller: nothing downstream works without the store.
func NewMilvusStore(ctx context.Context, config MilvusConfig) (*MilvusStore, error) {
	if config.Dimension <= 0 {
		return nil, ErrInvalidDimension
	}

	c, err := client.NewGrpcClient(ctx, config.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	store := &MilvusStore{
		client: c,
		config: config,
	}

	if err := store.ensureCollection(ctx); err != nil {
		c.Close()
		return nil, err
	}

	return store, nil
}

// ensureCollection creates the collection with schema if it doesn't exist
func (m *MilvusStore) ensureCollection(ctx context.Context) error {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if has {
		return nil
	}

	// book_lower carries the lowercased title so the fuzzy book filter
	// can run as a case-insensitive substring match in the expr.
	schema := &entity.Schema{
		CollectionName: m.config.CollectionName,
		AutoID:         true,
		Fields: []*entity.Field{
			{
				Name:       "id",
				DataType:   entity.FieldTypeInt64,
				PrimaryKey: true,
				AutoID:     true,
			},
			{
				Name:     "book_title",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "512",
				},
			},
			{
				Name:     "book_lower",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "512",
				},
			},
			{
				Name:     "content",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "65535",
				},
			},
			{
				Name:     "embedding",
				DataType: entity.FieldTypeFloatVector,
				TypeParams: map[string]string{
					"dim": fmt.Sprintf("%d", m.config.Dimension),
				},
			},
			{
				Name:     "metadata",
				DataType: entity.FieldTypeVarChar,
				TypeParams: map[string]string{
					"max_length": "2048", // JSON blob: book, chunk_index, relative_position, token_start, token_end
				},
			},
		},
	}

	if err := m.client.CreateCollection(ctx, schema, entity.DefaultShardNumber); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	idx, err := entity.NewIndexHNSW(entity.COSINE, m.config.M, m.config.EfConstruction)
	if err != nil {
		return fmt.Errorf("failed to create index config: %w", err)
	}

	if err := m.client.CreateIndex(ctx, m.config.CollectionName, "embedding", idx, false); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if err := m.client.LoadCollection(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}

	return nil
}

// Reset drops every stored chunk for every book by dropping and
// recreating the collection.
func (m *MilvusStore) Reset(ctx context.Context) error {
	has, err := m.client.HasCollection(ctx, m.config.CollectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if has {
		if err := m.client.DropCollection(ctx, m.config.CollectionName); err != nil {
			return fmt.Errorf("failed to drop collection: %w", err)
		}
	}

	return m.ensureCollection(ctx)
}

// Insert adds chunk records to Milvus. Every embedding must match the
// configured dimension.
func (m *MilvusStore) Insert(ctx context.Context, records []ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}

	titles := make([]string, len(records))
	lowers := make([]string, len(records))
	contents := make([]string, len(records))
	embeddings := make([][]float32, len(records))
	metadatas := make([]string, len(records))

	for i, record := range records {
		if len(record.Embedding) != m.config.Dimension {
			return fmt.Errorf("%w: expected %d, got %d at record %d",
				ErrInvalidDimension, m.config.Dimension, len(record.Embedding), i)
		}

		blob, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}

		titles[i] = record.Metadata.Book
		lowers[i] = strings.ToLower(record.Metadata.Book)
		contents[i] = record.Text
		embeddings[i] = record.Embedding
		metadatas[i] = string(blob)
	}

	columns := []entity.Column{
		entity.NewColumnVarChar("book_title", titles),
		entity.NewColumnVarChar("book_lower", lowers),
		entity.NewColumnVarChar("content", contents),
		entity.NewColumnFloatVector("embedding", m.config.Dimension, embeddings),
		entity.NewColumnVarChar("metadata", metadatas),
	}

	if _, err := m.client.Insert(ctx, m.config.CollectionName, "", columns...); err != nil {
		return fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}

	return nil
}

// Flush ensures all pending data is persisted.
func (m *MilvusStore) Flush(ctx context.Context) error {
	if err := m.client.Flush(ctx, m.config.CollectionName, false); err != nil {
		return fmt.Errorf("failed to flush data: %w", err)
	}
	return nil
}

// Search performs top-K cosine similarity search filtered by book title.
// The filter is a case-insensitive substring match: "moby" matches a
// stored "Moby Dick".
func (m *MilvusStore) Search(ctx context.Context, queryVector []float32, bookFilter string, topK int) ([]Evidence, error) {
	if len(queryVector) != m.config.Dimension {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidDimension, m.config.Dimension, len(queryVector))
	}

	expr := ""
	if bookFilter != "" {
		expr = fmt.Sprintf(`book_lower like "%%%s%%"`, escapeFilter(strings.ToLower(bookFilter)))
	}

	sp, err := entity.NewIndexHNSWSearchParam(64) // ef parameter for search
	if err != nil {
		return nil, fmt.Errorf("failed to create search params: %w", err)
	}

	vectors := []entity.Vector{entity.FloatVector(queryVector)}
	outputFields := []string{"book_title", "content", "metadata"}

	results, err := m.client.Search(
		ctx,
		m.config.CollectionName,
		nil, // partition names
		expr,
		outputFields,
		vectors,
		"embedding",
		entity.COSINE,
		topK,
		sp,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	if len(results) == 0 {
		return []Evidence{}, nil
	}

	evidence := make([]Evidence, 0, results[0].ResultCount)

	for i := 0; i < results[0].ResultCount; i++ {
		// With the COSINE metric Milvus scores are cosine similarity,
		// equal to 1 - cosine_distance.
		ev := Evidence{Score: results[0].Scores[i]}

		for _, field := range results[0].Fields {
			switch field.Name() {
			case "content":
				ev.Text = field.(*entity.ColumnVarChar).Data()[i]
			case "metadata":
				blob := field.(*entity.ColumnVarChar).Data()[i]
				if err := json.Unmarshal([]byte(blob), &ev.Metadata); err != nil {
					return nil, fmt.Errorf("failed to decode metadata: %w", err)
				}
			case "book_title":
				if ev.Metadata.Book == "" {
					ev.Metadata.Book = field.(*entity.ColumnVarChar).Data()[i]
				}
			}
		}

		evidence = append(evidence, ev)
	}

	return evidence, nil
}

// Close releases resources and closes the Milvus connection.
func (m *MilvusStore) Close() error {
	if m.client != nil {
		return m.client.Close()
	}
	return nil
}

// escapeFilter neutralizes characters that would break out of the quoted
// expr literal, plus the like wildcards % and _ so a filter only ever
// matches literally.
func escapeFilter(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
