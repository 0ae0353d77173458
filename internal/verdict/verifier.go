package verdict

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/Sayan-CtrlZ/KDSH-2026/internal/rag"
)

// VerifierConfig tunes the consistency verifier.
type VerifierConfig struct {
	// Backoff is the fixed delay applied once before returning the
	// conservative default, so a failing or rate-limited engine is not
	// hammered on the next call.
	Backoff time.Duration

	// RequestsPerSecond bounds the rate of reasoning engine calls.
	RequestsPerSecond float64
}

// DefaultVerifierConfig returns sensible defaults for batch verification.
func DefaultVerifierConfig() VerifierConfig {
	return VerifierConfig{
		Backoff:           time.Second,
		RequestsPerSecond: 2,
	}
}

// Verifier reduces a claim plus retrieved evidence to a binary verdict.
// A nil LLM means no access credential is configured: every verdict is
// the conservative default with zero engine calls.
type Verifier struct {
	llm     LLM
	limiter *rate.Limiter
	backoff time.Duration

	// sleep is swappable so tests can observe backoff without waiting.
	sleep func(time.Duration)
}

// NewVerifier creates a Verifier. llm may be nil when no credential is
// available.
func NewVerifier(llm LLM, config VerifierConfig) *Verifier {
	if config.Backoff <= 0 {
		config.Backoff = DefaultVerifierConfig().Backoff
	}
	if config.RequestsPerSecond <= 0 {
		config.RequestsPerSecond = DefaultVerifierConfig().RequestsPerSecond
	}

	return &Verifier{
		llm:     llm,
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1),
		backoff: config.Backoff,
		sleep:   time.Sleep,
	}
}

// Verify formats evidence and claim into the decision prompt, invokes
// the reasoning engine once, and parses the response. Engine failure and
// unparseable output both resolve to the conservative default (0) after
// a single backoff delay; there is never a retry loop.
func (v *Verifier) Verify(ctx context.Context, claim string, evidence []rag.Evidence, character string) int {
	if v.llm == nil {
		return Contradicted
	}

	if err := v.limiter.Wait(ctx); err != nil {
		return Contradicted
	}

	prompt := AssemblePrompt(claim, evidence, character)

	response, err := v.llm.Generate(ctx, prompt)
	if err != nil {
		return v.fallback()
	}

	verdict, ok := ParseVerdict(response)
	if !ok {
		return v.fallback()
	}

	return verdict
}

// fallback applies the single backoff delay and returns the conservative
// default.
func (v *Verifier) fallback() int {
	v.sleep(v.backoff)
	return Contradicted
}
