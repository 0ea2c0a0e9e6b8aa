// Package segments turns a word-timestamp transcript into a validated,
// ranked list of highlight segments by way of an external text-generation
// oracle. The oracle call is retried on transport failures; anything wrong
// with the oracle's content is terminal for that call.
package segments

import (
	"context"

	"github.com/autocliper/autoclip/internal/domain/transcript"
	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/retry"
	"github.com/autocliper/autoclip/internal/types"
)

// Oracle produces a text completion for a prompt. Implementations classify
// their failures through the errs package: transport failures retryable,
// configuration failures not.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options tunes one selection call.
type Options struct {
	MaxSegments        int
	MinDurationSeconds int
	MaxDurationSeconds int
	// Language is a free-form tag passed through to the oracle.
	Language string
}

func (o Options) withDefaults() Options {
	if o.MaxSegments <= 0 {
		o.MaxSegments = 5
	}
	if o.MinDurationSeconds <= 0 {
		o.MinDurationSeconds = 30
	}
	if o.MaxDurationSeconds <= 0 {
		o.MaxDurationSeconds = 90
	}
	if o.Language == "" {
		o.Language = "id"
	}
	return o
}

// Selector invokes the oracle and validates its output.
type Selector struct {
	oracle Oracle
	policy retry.Policy
}

// New creates a Selector with the pipeline-default retry policy.
func New(oracle Oracle) *Selector {
	return &Selector{oracle: oracle, policy: retry.DefaultPolicy()}
}

// NewWithPolicy creates a Selector with an explicit retry policy.
func NewWithPolicy(oracle Oracle, policy retry.Policy) *Selector {
	return &Selector{oracle: oracle, policy: policy}
}

// Select builds the windowed transcript, asks the oracle for up to
// opts.MaxSegments ranked segments and validates the whole batch. A single
// malformed element rejects the batch; a well-formed empty array is the
// distinct no-segments condition.
func (s *Selector) Select(ctx context.Context, words []types.TimedWord, opts Options) ([]types.CandidateSegment, error) {
	if len(words) == 0 {
		return nil, errs.MismatchedInput("transcript has no words")
	}
	opts = opts.withDefaults()

	text := transcript.Window(words, transcript.DefaultWindowSize)
	prompt := buildPrompt(text, opts)

	raw, err := retry.DoValue(ctx, s.policy, func() (string, error) {
		return s.oracle.Complete(ctx, prompt)
	})
	if err != nil {
		return nil, err
	}

	return parseCandidates(raw, opts)
}
