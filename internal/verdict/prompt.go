package verdict

import (
	"fmt"
	"strings"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
)

// AssemblePrompt builds the fixed decision prompt for the reasoning
// engine. Evidence is numbered in the order received, i.e. retrieval
// rank order; an empty evidence set yields an empty context block, never
// an error. The decision policy lives entirely in this prompt text: the
// caller's only obligation is to transmit it faithfully and parse the
// constrained output format.
func AssemblePrompt(claim string, evidence []rag.Evidence, character string) string {
	if character == "" {
		character = "unknown"
	}

	var b strings.Builder

	b.WriteString("You are a strict consistency checker for a library database.\n\n")
	b.WriteString("Your task: determine if the CLAIM is consistent with the provided ")
	b.WriteString("EVIDENCE from the book.\n\n")

	b.WriteString(fmt.Sprintf("Claim regarding: %s\n", character))
	b.WriteString(fmt.Sprintf("CLAIM: %q\n\n", claim))

	b.WriteString("EVIDENCE from the book:\n")
	for i, ev := range evidence {
		b.WriteString(fmt.Sprintf("---\nChunk %d:\n%s\n", i+1, ev.Text))
	}
	b.WriteString("\n")

	b.WriteString("Rules:\n")
	b.WriteString("1. If the claim directly contradicts the evidence (e.g., dead vs alive, ")
	b.WriteString("different location, different parent), answer 0.\n")
	b.WriteString("2. If the evidence strongly supports the claim (matches details), answer 1.\n")
	b.WriteString("3. If the evidence implies the claim is consistent (e.g., behavior fits ")
	b.WriteString("the character), answer 1.\n")
	b.WriteString("4. If the evidence is irrelevant or neutral but not contradictory, be ")
	b.WriteString("conservative. If the claim describes a specific event (like \"He killed ")
	b.WriteString("a bear\") and the evidence discusses the character but never mentions it, ")
	b.WriteString("it may be a fabricated claim. Otherwise, if nothing is contradicted, lean ")
	b.WriteString("toward consistency unless the event is clearly outside the narrative flow.\n\n")

	b.WriteString("Think step by step, then end your response with exactly one line:\n")
	b.WriteString("\"Final Answer: 0\" or \"Final Answer: 1\"\n")

	return b.String()
}
