// Package layout normalizes face-detector output into per-segment crop
// decisions and absorbs detector failures. Layout detection is a refinement,
// never a blocking dependency: any failure degrades every segment to the
// centered single-subject crop.
package layout

import (
	"context"
	"fmt"

	"github.com/autocliper/autoclip/internal/types"
)

// Resolver reports a layout decision per time range, in order.
type Resolver interface {
	ResolveLayout(ctx context.Context, videoPath string, ranges []types.TimeRange) ([]types.LayoutDecision, error)
}

// syntheticBox stands in when the detector decides SPLIT but reports no
// boxes; a centered half-frame crop keeps the descriptor schema-valid.
var syntheticBox = types.Box{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}

// SafeResolve calls the resolver and normalizes its output. It never fails:
// a nil resolver, a resolver error or a count mismatch all yield the CENTER
// default for every segment. The returned error is informational only and
// reports why the fallback was applied.
func SafeResolve(ctx context.Context, r Resolver, videoPath string, ranges []types.TimeRange) ([]types.LayoutDecision, error) {
	if r == nil {
		return defaultDecisions(len(ranges)), nil
	}

	decisions, err := r.ResolveLayout(ctx, videoPath, ranges)
	if err != nil {
		return defaultDecisions(len(ranges)), fmt.Errorf("layout resolver failed, using CENTER for all segments: %w", err)
	}
	if len(decisions) != len(ranges) {
		return defaultDecisions(len(ranges)), fmt.Errorf(
			"layout resolver returned %d decisions for %d segments, using CENTER for all segments",
			len(decisions), len(ranges))
	}

	out := make([]types.LayoutDecision, len(decisions))
	for i, d := range decisions {
		out[i] = Normalize(d)
	}
	return out, nil
}

// Normalize derives the mode from the face count and guarantees the
// SPLIT-implies-boxes invariant the descriptor builder relies on.
func Normalize(d types.LayoutDecision) types.LayoutDecision {
	if d.FaceCount < 0 {
		d.FaceCount = 0
	}
	if d.FaceCount >= 2 {
		d.Mode = types.CropSplit
		if len(d.Boxes) == 0 {
			d.Boxes = []types.Box{syntheticBox}
		}
	} else {
		d.Mode = types.CropCenter
		d.Boxes = nil
	}
	return d
}

func defaultDecisions(n int) []types.LayoutDecision {
	out := make([]types.LayoutDecision, n)
	for i := range out {
		out[i] = types.LayoutDecision{FaceCount: 1, Mode: types.CropCenter}
	}
	return out
}
