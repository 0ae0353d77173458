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
	evalLimit     int
	evalTopK      int
	evalStore     string
	evalReingest  bool
	evalBooksDir  string
	evalChunkSize int
	evalOverlap   int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [train.csv]",
	Short: "Score predictions against labeled claims",
	Long: `Evaluate runs verification over a labeled claims CSV (label column:
consistent or contradict) and reports accuracy with a per-class
classification breakdown. Rows with unrecognized labels are skipped and
excluded from accuracy accounting.

Examples:
  kdsh evaluate data/train.csv
  kdsh evaluate data/train.csv --limit 50 --reingest`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().IntVar(&evalLimit, "limit", 0, "Evaluate only the first N rows (0 = all)")
	evaluateCmd.Flags().IntVar(&evalTopK, "topk", pipeline.DefaultTopK, "Evidence chunks retrieved per claim")
	evaluateCmd.Flags().StringVar(&evalStore, "store", "milvus", "Vector store backend (milvus or memory)")
	evaluateCmd.Flags().BoolVar(&evalReingest, "reingest", false, "Rebuild the index before evaluating")
	evaluateCmd.Flags().StringVar(&evalBooksDir, "books", "data/Books", "Books directory used with --reingest")
	evaluateCmd.Flags().IntVar(&evalChunkSize, "chunk-size", ingest.DefaultChunkSize, "Tokens per chunk window")
	evaluateCmd.Flags().IntVar(&evalOverlap, "overlap", ingest.DefaultOverlap, "Tokens shared between consecutive windows")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	claimsPath := args[0]
	ctx := context.Background()

	claims, err := dataset.LoadClaims(claimsPath)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	if evalLimit > 0 && evalLimit < len(claims) {
		claims = claims[:evalLimit]
	}

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}

	if evalStore == "memory" {
		evalReingest = true
	}

	store, err := openStore(ctx, evalStore, embedder.GetDimension())
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}
	defer store.Close()

	if evalReingest {
		fmt.Println(statusStyle.Render(fmt.Sprintf("→ Rebuilding index from %s...", evalBooksDir)))
		chunks, inserted, err := pipeline.IndexBooks(ctx, evalBooksDir, evalChunkSize, evalOverlap,
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

	p, err := pipeline.New(retriever, newVerifier(), evalTopK)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Evaluating %d labeled claims...", len(claims))))

	report, stats, err := p.EvaluateClaims(ctx, claims)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	fmt.Println()
	fmt.Print(report.Format())
	fmt.Println(statusStyle.Render(fmt.Sprintf("%d processed, %d skipped", stats.Processed, stats.Skipped)))
	return nil
}
