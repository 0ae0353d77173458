package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/dataset"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/ingest"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/pipeline"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
)

var (
	verifyOut       string
	verifyTopK      int
	verifyStore     string
	verifyReingest  bool
	verifyBooksDir  string
	verifyChunkSize int
	verifyOverlap   int
)

var verifyCmd = &cobra.Command{
	Use:   "verify [claims.csv]",
	Short: "Predict consistency verdicts for a claims file",
	Long: `Verify reads a claims CSV (columns: id, book_name, char, content),
retrieves the most relevant book passages per claim, asks the reasoning
model for a consistency verdict, and writes an {id, prediction} CSV.

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for embeddings and reasoning
  MILVUS_ADDRESS     - Milvus server address (default: localhost:19530)

Examples:
  kdsh verify data/test.csv
  kdsh verify data/test.csv --out output/submission.csv --topk 5
  kdsh verify data/test.csv --store memory --reingest --books data/Books`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyOut, "out", "output/submission.csv", "Output CSV path")
	verifyCmd.Flags().IntVar(&verifyTopK, "topk", pipeline.DefaultTopK, "Evidence chunks retrieved per claim")
	verifyCmd.Flags().StringVar(&verifyStore, "store", "milvus", "Vector store backend (milvus or memory)")
	verifyCmd.Flags().BoolVar(&verifyReingest, "reingest", false, "Rebuild the index before verifying")
	verifyCmd.Flags().StringVar(&verifyBooksDir, "books", "data/Books", "Books directory used with --reingest")
	verifyCmd.Flags().IntVar(&verifyChunkSize, "chunk-size", ingest.DefaultChunkSize, "Tokens per chunk window")
	verifyCmd.Flags().IntVar(&verifyOverlap, "overlap", ingest.DefaultOverlap, "Tokens shared between consecutive windows")
}

func runVerify(cmd *cobra.Command, args []string) error {
	claimsPath := args[0]
	ctx := context.Background()

	claims, err := dataset.LoadClaims(claimsPath)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}

	// The in-memory store holds nothing between runs, so it always
	// needs an in-process rebuild.
	if verifyStore == "memory" {
		verifyReingest = true
	}

	store, err := openStore(ctx, verifyStore, embedder.GetDimension())
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer store.Close()

	if verifyReingest {
		fmt.Println(statusStyle.Render(fmt.Sprintf("→ Rebuilding index from %s...", verifyBooksDir)))
		chunks, inserted, err := pipeline.IndexBooks(ctx, verifyBooksDir, verifyChunkSize, verifyOverlap,
			embedder, store, rag.DefaultBuildOptions())
		if err != nil {
			return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
		}
		fmt.Println(statusStyle.Render(fmt.Sprintf("→ Indexed %d chunks (%d inserted)", chunks, inserted)))
	}

	retriever, err := rag.NewRetriever(embedder, store)
	if err != nil {
		return err
	}

	p, err := pipeline.New(retriever, newVerifier(), verifyTopK)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Verifying %d claims...", len(claims))))

	predictions, stats, err := p.VerifyClaims(ctx, claims)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if err := pipeline.WriteSubmission(verifyOut, predictions); err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ %d processed, %d skipped, written to %s",
		stats.Processed, stats.Skipped, verifyOut)))
	return nil
}
