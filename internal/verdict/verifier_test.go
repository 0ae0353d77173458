package verdict

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
)

// newTestVerifier builds a verifier with an instant, counted sleep.
func newTestVerifier(llm LLM) (*Verifier, *int) {
	v := NewVerifier(llm, VerifierConfig{
		Backoff:           10 * time.Millisecond,
		RequestsPerSecond: 1000, // tests never wait on the limiter
	})
	sleeps := 0
	v.sleep = func(time.Duration) { sleeps++ }
	return v, &sleeps
}

func TestVerifier_NoCredential(t *testing.T) {
	v, sleeps := newTestVerifier(nil)

	got := v.Verify(context.Background(), "He died at sea", nil, "Ahab")

	if got != Contradicted {
		t.Errorf("verdict = %d, want conservative default 0", got)
	}
	if *sleeps != 0 {
		t.Errorf("no-credential path must not back off, slept %d times", *sleeps)
	}
}

func TestVerifier_ParsesTaggedResponse(t *testing.T) {
	mock := NewMockLLM("The evidence supports it.\nFinal Answer: 1")
	v, sleeps := newTestVerifier(mock)

	got := v.Verify(context.Background(), "claim", []rag.Evidence{{Text: "passage"}}, "Ahab")

	if got != Consistent {
		t.Errorf("verdict = %d, want 1", got)
	}
	if mock.Calls != 1 {
		t.Errorf("engine calls = %d, want exactly 1", mock.Calls)
	}
	if *sleeps != 0 {
		t.Errorf("successful parse must not back off, slept %d times", *sleeps)
	}
}

func TestVerifier_EngineFailure(t *testing.T) {
	mock := NewMockLLMWithError(errors.New("rate limited"))
	v, sleeps := newTestVerifier(mock)

	got := v.Verify(context.Background(), "claim", nil, "")

	if got != Contradicted {
		t.Errorf("verdict = %d, want conservative default 0", got)
	}
	if *sleeps != 1 {
		t.Errorf("expected exactly one backoff delay, got %d", *sleeps)
	}
	if mock.Calls != 1 {
		t.Errorf("engine calls = %d, want exactly 1 (no retries)", mock.Calls)
	}
}

func TestVerifier_UnparseableResponse(t *testing.T) {
	mock := NewMockLLM("...42")
	v, sleeps := newTestVerifier(mock)

	got := v.Verify(context.Background(), "claim", nil, "")

	if got != Contradicted {
		t.Errorf("verdict = %d, want conservative default 0", got)
	}
	if *sleeps != 1 {
		t.Errorf("expected exactly one backoff delay, got %d", *sleeps)
	}
}

func TestVerifier_EmptyEvidence(t *testing.T) {
	// Empty retrieval (no matching book title) still issues a
	// well-formed prompt and returns a verdict per the parsing rules.
	mock := NewMockLLM("Final Answer: 1")
	v, _ := newTestVerifier(mock)

	got := v.Verify(context.Background(), "He died at sea", []rag.Evidence{}, "Ahab")

	if got != Consistent {
		t.Errorf("verdict = %d, want 1", got)
	}
	if !strings.Contains(mock.LastPrompt, "EVIDENCE from the book:") {
		t.Error("prompt missing evidence section")
	}
	if !strings.Contains(mock.LastPrompt, "He died at sea") {
		t.Error("prompt missing claim")
	}
}

func TestVerifier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockLLM("Final Answer: 1")
	v, _ := newTestVerifier(mock)

	got := v.Verify(ctx, "claim", nil, "")

	if got != Contradicted {
		t.Errorf("verdict = %d, want conservative default 0", got)
	}
	if mock.Calls != 0 {
		t.Errorf("cancelled context must not reach the engine, got %d calls", mock.Calls)
	}
}
