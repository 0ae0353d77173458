package verdict

import (
	"strings"
	"testing"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
)

func TestAssemblePrompt_NumbersEvidenceInRankOrder(t *testing.T) {
	evidence := []rag.Evidence{
		{Text: "most relevant passage", Score: 0.91},
		{Text: "second passage", Score: 0.84},
		{Text: "third passage", Score: 0.60},
	}

	prompt := AssemblePrompt("He died at sea", evidence, "Ahab")

	first := strings.Index(prompt, "Chunk 1:\nmost relevant passage")
	second := strings.Index(prompt, "Chunk 2:\nsecond passage")
	third := strings.Index(prompt, "Chunk 3:\nthird passage")

	if first < 0 || second < 0 || third < 0 {
		t.Fatalf("numbered chunks missing from prompt:\n%s", prompt)
	}
	if !(first < second && second < third) {
		t.Error("evidence not in retrieval rank order")
	}
}

func TestAssemblePrompt_ClaimAndCharacter(t *testing.T) {
	prompt := AssemblePrompt("He died at sea", nil, "Ahab")

	if !strings.Contains(prompt, `CLAIM: "He died at sea"`) {
		t.Error("prompt missing claim")
	}
	if !strings.Contains(prompt, "Claim regarding: Ahab") {
		t.Error("prompt missing character")
	}
}

func TestAssemblePrompt_UnknownCharacterPlaceholder(t *testing.T) {
	prompt := AssemblePrompt("He died at sea", nil, "")

	if !strings.Contains(prompt, "Claim regarding: unknown") {
		t.Error("prompt missing unknown-character placeholder")
	}
}

func TestAssemblePrompt_EmptyEvidence(t *testing.T) {
	// No evidence still yields a well-formed prompt with an empty
	// context block, never a crash.
	prompt := AssemblePrompt("He died at sea", []rag.Evidence{}, "Ahab")

	if !strings.Contains(prompt, "EVIDENCE from the book:") {
		t.Error("prompt missing evidence section")
	}
	if strings.Contains(prompt, "Chunk 1:") {
		t.Error("empty evidence must not produce a numbered chunk")
	}
	if !strings.Contains(prompt, `"Final Answer: 0" or "Final Answer: 1"`) {
		t.Error("prompt missing the output format instruction")
	}
}
