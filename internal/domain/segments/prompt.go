package segments

import (
	"fmt"
	"strings"
)

// buildPrompt renders the selection instruction. The contract demanded of
// the oracle mirrors what parseCandidates verifies: a raw JSON array, no
// prose, no code fences, fixed enums, bounded durations, dense ranks.
func buildPrompt(windowed string, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"You are selecting viral short-form clips from a long-form video transcript. "+
			"The transcript language is %q. Timestamps in [HH:MM:SS] form mark the time "+
			"of the word that follows them.\n\n", opts.Language)

	fmt.Fprintf(&b,
		"Pick up to %d segments, each between %d and %d seconds long. "+
			"Segments must start at a natural opening line and end on a complete thought.\n\n",
		opts.MaxSegments, opts.MinDurationSeconds, opts.MaxDurationSeconds)

	b.WriteString(
		"Respond with a raw JSON array only. No prose, no markdown, no code fences. " +
			"Each element must have exactly these fields:\n" +
			`  "rank": integer, 1 = best; ranks must be 1..N with no gaps or ties` + "\n" +
			`  "start": "HH:MM:SS"` + "\n" +
			`  "end": "HH:MM:SS"` + "\n" +
			`  "duration_seconds": integer, must equal end minus start` + "\n" +
			`  "hookText": the opening line, shown as an on-screen teaser` + "\n" +
			`  "hookCategory": one of CURIOSITY, CONTROVERSY, RELATABILITY, SHOCK, STORY, CHALLENGE` + "\n" +
			`  "rationale": why this segment can go viral` + "\n" +
			`  "viralScore": integer 0-100` + "\n" +
			`  "confidence": one of HIGH, MEDIUM, LOW` + "\n\n")

	b.WriteString("Transcript:\n")
	b.WriteString(windowed)
	return b.String()
}
