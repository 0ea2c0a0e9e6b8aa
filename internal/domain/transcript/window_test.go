package transcript

import (
	"strings"
	"testing"

	"github.com/autocliper/autoclip/internal/types"
)

func makeWords(n int, step float64) []types.TimedWord {
	out := make([]types.TimedWord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.TimedWord{
			Text:       "word",
			Punctuated: "Word,",
			Start:      float64(i) * step,
			End:        float64(i)*step + step*0.8,
		})
	}
	return out
}

func TestWindow_MarkerBeforeFirstWord(t *testing.T) {
	got := Window(makeWords(3, 0.5), 30)
	if !strings.HasPrefix(got, "[00:00:00] Word,") {
		t.Fatalf("expected leading marker, got %q", got)
	}
}

func TestWindow_MarkerCadence(t *testing.T) {
	// 65 words at 1s apiece with a window of 30: markers at words 0, 30, 60.
	got := Window(makeWords(65, 1), 30)
	markers := strings.Count(got, "[")
	if markers != 3 {
		t.Fatalf("expected 3 markers, got %d in %q", markers, got)
	}
	for _, m := range []string{"[00:00:00]", "[00:00:30]", "[00:01:00]"} {
		if !strings.Contains(got, m) {
			t.Fatalf("missing marker %s in %q", m, got)
		}
	}
}

func TestWindow_UsesPunctuatedForm(t *testing.T) {
	words := []types.TimedWord{
		{Text: "hello", Punctuated: "Hello,", Start: 0, End: 0.4},
		{Text: "world", Start: 0.5, End: 0.9},
	}
	got := Window(words, 30)
	if got != "[00:00:00] Hello, world" {
		t.Fatalf("unexpected window text: %q", got)
	}
}

func TestWindow_Empty(t *testing.T) {
	if got := Window(nil, 30); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestWindow_DefaultSize(t *testing.T) {
	a := Window(makeWords(40, 1), 0)
	b := Window(makeWords(40, 1), DefaultWindowSize)
	if a != b {
		t.Fatalf("size<=0 should fall back to the default cadence")
	}
}
