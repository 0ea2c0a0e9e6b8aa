package segments

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/autocliper/autoclip/internal/domain/timestamp"
	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/types"
)

// durationTolerance is the rounding slack allowed between the reported
// duration_seconds and the value derived from start/end.
const durationTolerance = 1.0

var hookCategories = map[string]struct{}{
	types.HookCuriosity:    {},
	types.HookControversy:  {},
	types.HookRelatability: {},
	types.HookShock:        {},
	types.HookStory:        {},
	types.HookChallenge:    {},
}

var confidenceLevels = map[string]struct{}{
	types.ConfidenceHigh:   {},
	types.ConfidenceMedium: {},
	types.ConfidenceLow:    {},
}

// rawSegment mirrors the oracle's element shape with pointer fields so a
// missing key is distinguishable from a zero value.
type rawSegment struct {
	Rank            *int     `json:"rank"`
	Start           *string  `json:"start"`
	End             *string  `json:"end"`
	DurationSeconds *float64 `json:"duration_seconds"`
	HookText        *string  `json:"hookText"`
	HookCategory    *string  `json:"hookCategory"`
	Rationale       *string  `json:"rationale"`
	ViralScore      *float64 `json:"viralScore"`
	Confidence      *string  `json:"confidence"`
}

// parseCandidates projects the oracle's raw completion into validated
// CandidateSegments. The whole batch is rejected on the first violating
// element; an empty array is the distinct no-segments condition.
func parseCandidates(raw string, opts Options) ([]types.CandidateSegment, error) {
	clean := stripFences(raw)
	if strings.TrimSpace(clean) == "" {
		return nil, errs.MalformedOutput("oracle returned an empty completion")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &elems); err != nil {
		return nil, errs.MalformedOutput("oracle output is not a JSON array").
			WithDetail("output", truncate(clean, 200)).
			WithCause(err)
	}
	if len(elems) == 0 {
		return nil, errs.NoSegments("oracle found no viable segments in this source")
	}

	out := make([]types.CandidateSegment, 0, len(elems))
	ranks := make(map[int]struct{}, len(elems))
	for i, elem := range elems {
		seg, err := projectSegment(elem, i, opts)
		if err != nil {
			return nil, err
		}
		if _, dup := ranks[seg.Rank]; dup {
			return nil, elementErr(i, "duplicate rank").WithDetail("rank", seg.Rank)
		}
		ranks[seg.Rank] = struct{}{}
		out = append(out, seg)
	}

	// Dense 1..N with no ties: N distinct ranks, each within [1, N].
	for r := 1; r <= len(out); r++ {
		if _, ok := ranks[r]; !ok {
			return nil, errs.MalformedOutput("ranks are not a dense 1..N sequence").
				WithDetail("missing_rank", r).
				WithDetail("count", len(out))
		}
	}
	if len(out) > opts.MaxSegments {
		return nil, errs.MalformedOutput("oracle returned more segments than requested").
			WithDetail("count", len(out)).
			WithDetail("max", opts.MaxSegments)
	}
	return out, nil
}

func projectSegment(elem json.RawMessage, idx int, opts Options) (types.CandidateSegment, error) {
	var zero types.CandidateSegment

	var r rawSegment
	if err := json.Unmarshal(elem, &r); err != nil {
		return zero, elementErr(idx, "element is not an object with the expected field types").WithCause(err)
	}
	if r.Rank == nil || r.Start == nil || r.End == nil || r.DurationSeconds == nil ||
		r.HookText == nil || r.HookCategory == nil || r.Rationale == nil ||
		r.ViralScore == nil || r.Confidence == nil {
		return zero, elementErr(idx, "element is missing a required field")
	}

	if *r.Rank < 1 {
		return zero, elementErr(idx, "rank must be >= 1").WithDetail("rank", *r.Rank)
	}
	if _, ok := hookCategories[*r.HookCategory]; !ok {
		return zero, elementErr(idx, "invalid hookCategory").WithDetail("hookCategory", *r.HookCategory)
	}
	if _, ok := confidenceLevels[*r.Confidence]; !ok {
		return zero, elementErr(idx, "invalid confidence").WithDetail("confidence", *r.Confidence)
	}
	if *r.ViralScore < 0 || *r.ViralScore > 100 {
		return zero, elementErr(idx, "viralScore out of range").WithDetail("viralScore", *r.ViralScore)
	}
	if strings.TrimSpace(*r.HookText) == "" {
		return zero, elementErr(idx, "hookText is empty")
	}
	if strings.TrimSpace(*r.Rationale) == "" {
		return zero, elementErr(idx, "rationale is empty")
	}

	startSec, err := timestamp.FromTimestamp(*r.Start)
	if err != nil {
		return zero, elementErr(idx, "invalid start timestamp").WithCause(err)
	}
	endSec, err := timestamp.FromTimestamp(*r.End)
	if err != nil {
		return zero, elementErr(idx, "invalid end timestamp").WithCause(err)
	}
	if endSec <= startSec {
		return zero, elementErr(idx, "end is not after start").
			WithDetail("start", *r.Start).
			WithDetail("end", *r.End)
	}

	span := endSec - startSec
	if math.Abs(span-*r.DurationSeconds) > durationTolerance {
		return zero, elementErr(idx, "duration_seconds does not match start/end").
			WithDetail("duration_seconds", *r.DurationSeconds).
			WithDetail("derived", span)
	}
	if span < float64(opts.MinDurationSeconds)-durationTolerance ||
		span > float64(opts.MaxDurationSeconds)+durationTolerance {
		return zero, elementErr(idx, "segment duration outside configured bounds").
			WithDetail("duration", span).
			WithDetail("min", opts.MinDurationSeconds).
			WithDetail("max", opts.MaxDurationSeconds)
	}

	return types.CandidateSegment{
		Rank:            *r.Rank,
		Start:           *r.Start,
		End:             *r.End,
		DurationSeconds: int(math.Round(*r.DurationSeconds)),
		HookText:        *r.HookText,
		HookCategory:    *r.HookCategory,
		Rationale:       *r.Rationale,
		ViralScore:      int(math.Round(*r.ViralScore)),
		Confidence:      *r.Confidence,
	}, nil
}

func elementErr(idx int, msg string) *errs.Error {
	return errs.MalformedOutput(msg).WithDetail("element", idx)
}

// stripFences removes enclosing markdown code fences. The prompt forbids
// them, but oracles are not 100% compliant.
func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	} else {
		t = strings.TrimPrefix(t, "```")
	}
	if j := strings.LastIndex(t, "```"); j >= 0 {
		t = t[:j]
	}
	return strings.TrimSpace(t)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
