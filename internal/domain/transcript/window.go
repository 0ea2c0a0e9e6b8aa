// Package transcript renders the timed word stream into the compact,
// time-addressable text block fed to the segment oracle. A [HH:MM:SS] marker
// is inserted at a fixed word cadence rather than at sentence or silence
// boundaries, which keeps prompt size predictable and does not depend on
// punctuation quality.
package transcript

import (
	"strings"

	"github.com/autocliper/autoclip/internal/domain/timestamp"
	"github.com/autocliper/autoclip/internal/types"
)

// DefaultWindowSize is the marker cadence in words. Roughly every few
// seconds of speech, enough resolution for the oracle to name accurate
// segment boundaries.
const DefaultWindowSize = 30

// Window joins the words with a timestamp marker before the first word of
// every size-word window, and before the very first word. Words use their
// punctuated surface form.
func Window(words []types.TimedWord, size int) string {
	if len(words) == 0 {
		return ""
	}
	if size <= 0 {
		size = DefaultWindowSize
	}

	var b strings.Builder
	b.Grow(len(words) * 8)
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i%size == 0 {
			b.WriteByte('[')
			b.WriteString(timestamp.ToTimestamp(w.Start))
			b.WriteString("] ")
		}
		b.WriteString(w.Surface())
	}
	return b.String()
}
