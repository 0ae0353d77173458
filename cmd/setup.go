package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/charmbracelet/lipgloss"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
	"github.com/Sayan-CtrlZ/KDSH-2026/internal/verdict"
)

// Shared styling
var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F780FF")).Bold(true)   // bright pink
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true) // muted purple
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))              // green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)   // red
)

// newEmbedder builds the embedding port from environment configuration.
// The embedding credential is required: retrieval is unusable without it.
func newEmbedder() (rag.Embedder, error) {
	model, dimension := rag.EmbedderConfigFromEnv()
	return rag.NewOpenAIEmbedder(model, dimension)
}

// openStore opens the requested vector store. A store that cannot be
// reached at construction time is fatal; nothing downstream is usable
// without it.
func openStore(ctx context.Context, kind string, dimension int) (rag.VectorStore, error) {
	switch kind {
	case "milvus":
		config := rag.DefaultMilvusConfig()
		config.Dimension = dimension
		return rag.NewMilvusStore(ctx, config)
	case "memory":
		return rag.NewMemoryStore(dimension)
	default:
		return nil, fmt.Errorf("unknown store %q (want milvus or memory)", kind)
	}
}

// newVerifier builds the verifier. A missing reasoning credential is not
// fatal: the verifier runs in its no-credential mode, returning the
// conservative default for every claim without calling the engine.
func newVerifier() *verdict.Verifier {
	llm, err := verdict.NewOpenAILLM(verdict.DefaultLLMConfig())
	if err != nil {
		log.Printf("warning: no reasoning credential (%v); all verdicts default to 0", err)
		return verdict.NewVerifier(nil, verdict.DefaultVerifierConfig())
	}
	return verdict.NewVerifier(llm, verdict.DefaultVerifierConfig())
}
