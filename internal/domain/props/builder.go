// Package props assembles and validates render descriptors: the fully
// resolved, renderer-ready recipe for one output clip. Building is a
// pure fold over already-fetched data; every descriptor is derived
// independently from its (segment, layout) pair.
package props

import (
	"math"

	"github.com/google/uuid"

	"github.com/autocliper/autoclip/internal/domain/timestamp"
	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/types"
)

// Config tunes descriptor output. Zero values fall back to 30fps 1080x1920.
type Config struct {
	FPS    int
	Width  int
	Height int
	Styles StyleOverrides
}

func (c Config) withDefaults() Config {
	if c.FPS <= 0 {
		c.FPS = 30
	}
	if c.Width <= 0 {
		c.Width = 1080
	}
	if c.Height <= 0 {
		c.Height = 1920
	}
	return c
}

// Build produces one validated descriptor per (segment, layout) pair, in
// input order. Precondition violations and data-integrity bugs between the
// inputs surface as mismatched-input errors; they are not recoverable.
func Build(
	videoSrc string,
	segments []types.CandidateSegment,
	words []types.TimedWord,
	layouts []types.LayoutDecision,
	cfg Config,
) ([]types.RenderDescriptor, error) {
	if videoSrc == "" {
		return nil, errs.MismatchedInput("video source is empty")
	}
	if len(segments) == 0 {
		return nil, errs.MismatchedInput("no segments to build descriptors for")
	}
	if len(words) == 0 {
		return nil, errs.MismatchedInput("transcript has no words")
	}
	if len(layouts) != len(segments) {
		return nil, errs.MismatchedInput("layouts do not correspond to segments").
			WithDetail("segments", len(segments)).
			WithDetail("layouts", len(layouts))
	}
	cfg = cfg.withDefaults()

	subtitleStyle := MergeSubtitleStyle(cfg.Styles.Subtitle)
	hookStyle := MergeHookStyle(cfg.Styles.Hook)

	out := make([]types.RenderDescriptor, 0, len(segments))
	for i, seg := range segments {
		startSec, err := timestamp.FromTimestamp(seg.Start)
		if err != nil {
			return nil, errs.MismatchedInput("segment start is not a valid timestamp").
				WithDetail("segment", i).WithCause(err)
		}
		endSec, err := timestamp.FromTimestamp(seg.End)
		if err != nil {
			return nil, errs.MismatchedInput("segment end is not a valid timestamp").
				WithDetail("segment", i).WithCause(err)
		}
		if endSec <= startSec {
			return nil, errs.MismatchedInput("segment end is not after start").
				WithDetail("segment", i)
		}

		la := layouts[i]
		var crop *types.Box
		if la.Mode == types.CropSplit {
			// The layout resolver guarantees SPLIT decisions carry boxes; a
			// violation here is a wiring bug, not a condition to paper over.
			if len(la.Boxes) == 0 {
				return nil, errs.MismatchedInput("SPLIT layout without bounding boxes").
					WithDetail("segment", i)
			}
			b := la.Boxes[0]
			crop = &b
		}
		mode := la.Mode
		if mode != types.CropSplit {
			mode = types.CropCenter
		}

		d := types.RenderDescriptor{
			ID:               uuid.NewString(),
			FPS:              cfg.FPS,
			Width:            cfg.Width,
			Height:           cfg.Height,
			DurationInFrames: int(math.Ceil((endSec - startSec) * float64(cfg.FPS))),
			VideoSrc:         videoSrc,
			VideoStartTime:   startSec,
			CropMode:         mode,
			CropData:         crop,
			Words:            windowWords(words, startSec, endSec),
			SubtitleStyle:    subtitleStyle,
			HookStyle:        hookStyle,
			HookText:         seg.HookText,
		}
		if err := Validate(d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// windowWords keeps the words strictly contained in [startSec, endSec].
// A word straddling a segment boundary is dropped rather than rendered
// partially.
func windowWords(words []types.TimedWord, startSec, endSec float64) []types.CaptionWord {
	out := make([]types.CaptionWord, 0, 64)
	for _, w := range words {
		if w.Start >= startSec && w.End <= endSec {
			out = append(out, types.CaptionWord{
				Text:  w.Surface(),
				Start: w.Start,
				End:   w.End,
			})
		}
	}
	return out
}
