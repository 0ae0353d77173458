// Package pipeline wires the ingestion, retrieval, and verification
// components into the batch operations exposed by the CLI: indexing a
// book corpus, predicting verdicts for a claims file, and evaluating
// against labeled claims.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/dataset"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/eval"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/ingest"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/verdict"
)

// DefaultTopK is the number of evidence chunks retrieved per claim.
const DefaultTopK = 5

// Prediction is one per-claim output row.
type Prediction struct {
	ID      string
	Verdict int
}

// RunStats reports how a batch went: rows that produced a verdict vs
// rows skipped because no result could be produced for them.
type RunStats struct {
	Processed int
	Skipped   int
}

// Pipeline holds the components shared across batch operations.
type Pipeline struct {
	retriever *rag.Retriever
	verifier  *verdict.Verifier
	topK      int
}

// New creates a Pipeline. topK <= 0 selects DefaultTopK.
func New(retriever *rag.Retriever, verifier *verdict.Verifier, topK int) (*Pipeline, error) {
	if retriever == nil {
		return nil, fmt.Errorf("retriever cannot be nil")
	}
	if verifier == nil {
		return nil, fmt.Errorf("verifier cannot be nil")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	return &Pipeline{
		retriever: retriever,
		verifier:  verifier,
		topK:      topK,
	}, nil
}

// IndexBooks chunks every book under booksDir and builds the vector
// index as a full replace. Returns chunk and inserted counts.
func IndexBooks(
	ctx context.Context,
	booksDir string,
	chunkSize, overlap int,
	embedder rag.Embedder,
	store rag.VectorStore,
	opts rag.BuildOptions,
) (chunks int, inserted int, err error) {
	loader := ingest.NewBookLoader(booksDir)

	allChunks, err := loader.ProcessAllBooks(chunkSize, overlap)
	if err != nil {
		return 0, 0, err
	}

	inserted, err = rag.BuildIndex(ctx, allChunks, embedder, store, opts)
	if err != nil {
		return len(allChunks), inserted, err
	}

	return len(allChunks), inserted, nil
}

// VerifyClaims produces one prediction per claim. A claim whose
// retrieval fails is logged and skipped rather than aborting the batch;
// empty evidence is not a failure, the verifier handles it as "no
// evidence". Cancellation is honored between rows and partial results
// are returned.
func (p *Pipeline) VerifyClaims(ctx context.Context, claims []dataset.Claim) ([]Prediction, RunStats, error) {
	predictions := make([]Prediction, 0, len(claims))
	var stats RunStats

	for _, claim := range claims {
		if err := ctx.Err(); err != nil {
			return predictions, stats, err
		}

		evidence, err := p.retriever.RetrieveEvidence(ctx, claim.Text, claim.Book, claim.Character, p.topK)
		if err != nil {
			log.Printf("skipping claim %s: %v", claim.ID, err)
			stats.Skipped++
			continue
		}

		predictions = append(predictions, Prediction{
			ID:      claim.ID,
			Verdict: p.verifier.Verify(ctx, claim.Text, evidence, claim.Character),
		})
		stats.Processed++
	}

	return predictions, stats, nil
}

// EvaluateClaims runs verification over labeled claims and computes the
// classification report. Rows with unrecognized labels are logged and
// excluded from accuracy accounting.
func (p *Pipeline) EvaluateClaims(ctx context.Context, claims []dataset.Claim) (eval.Report, RunStats, error) {
	var stats RunStats
	var actuals, predictions []int

	for _, claim := range claims {
		if err := ctx.Err(); err != nil {
			return eval.Report{}, stats, err
		}

		actual, err := dataset.ParseLabel(claim.RawLabel)
		if err != nil {
			log.Printf("skipping claim %s: %v", claim.ID, err)
			stats.Skipped++
			continue
		}

		evidence, err := p.retriever.RetrieveEvidence(ctx, claim.Text, claim.Book, claim.Character, p.topK)
		if err != nil {
			log.Printf("skipping claim %s: %v", claim.ID, err)
			stats.Skipped++
			continue
		}

		actuals = append(actuals, actual)
		predictions = append(predictions, p.verifier.Verify(ctx, claim.Text, evidence, claim.Character))
		stats.Processed++
	}

	report, err := eval.Compute(actuals, predictions)
	if err != nil {
		return eval.Report{}, stats, err
	}

	return report, stats, nil
}
