package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/ingest"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/pipeline"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
)

var (
	indexChunkSize int
	indexOverlap   int
	indexBatchSize int
)

var indexCmd = &cobra.Command{
	Use:   "index [books-dir]",
	Short: "Chunk and index a directory of books into the vector store",
	Long: `Index splits every .txt book in the directory into overlapping token
windows, embeds them, and rebuilds the vector store.

The rebuild is a full replace: all previously indexed chunks for every
book are discarded before the new set is inserted.

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for embeddings
  MILVUS_ADDRESS     - Milvus server address (default: localhost:19530)

Examples:
  kdsh index data/Books
  kdsh index data/Books --chunk-size 800 --overlap 100`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().IntVar(&indexChunkSize, "chunk-size", ingest.DefaultChunkSize, "Tokens per chunk window")
	indexCmd.Flags().IntVar(&indexOverlap, "overlap", ingest.DefaultOverlap, "Tokens shared between consecutive windows")
	indexCmd.Flags().IntVar(&indexBatchSize, "batch-size", rag.DefaultBuildOptions().BatchSize, "Chunks embedded per API round trip")
}

func runIndex(cmd *cobra.Command, args []string) error {
	booksDir := args[0]
	ctx := context.Background()

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, "milvus", embedder.GetDimension())
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer store.Close()

	fmt.Println(statusStyle.Render(fmt.Sprintf("→ Indexing books from %s...", booksDir)))

	chunks, inserted, err := pipeline.IndexBooks(ctx, booksDir, indexChunkSize, indexOverlap,
		embedder, store, rag.BuildOptions{BatchSize: indexBatchSize})
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Indexed %d chunks (%d inserted)", chunks, inserted)))
	return nil
}
