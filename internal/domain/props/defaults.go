package props

import "github.com/autocliper/autoclip/internal/types"

// DefaultSubtitleStyle is the caption styling used when the caller supplies
// no override.
func DefaultSubtitleStyle() types.SubtitleStyle {
	return types.SubtitleStyle{
		FontFamily:     "Montserrat",
		FontSize:       48,
		FontWeight:     800,
		Color:          "#FFFFFF",
		HighlightColor: "#FFFF00",
		StrokeColor:    "#000000",
		StrokeWidth:    4,
		Position:       "bottom",
	}
}

// DefaultHookStyle is the teaser styling used when the caller supplies no
// override. DurationFrames is 3s at the default 30fps.
func DefaultHookStyle() types.HookStyle {
	return types.HookStyle{
		Show:            true,
		DurationFrames:  90,
		FontFamily:      "Montserrat",
		FontSize:        32,
		BackgroundColor: "rgba(0,0,0,0.7)",
		Position:        "top",
	}
}

// SubtitleOverride overrides individual subtitle-style fields; nil fields
// keep the default.
type SubtitleOverride struct {
	FontFamily     *string
	FontSize       *int
	FontWeight     *int
	Color          *string
	HighlightColor *string
	StrokeColor    *string
	StrokeWidth    *int
	Position       *string
}

// HookOverride overrides individual hook-style fields; nil fields keep the
// default.
type HookOverride struct {
	Show            *bool
	DurationFrames  *int
	FontFamily      *string
	FontSize        *int
	BackgroundColor *string
	Position        *string
}

// StyleOverrides bundles the per-field style overrides a caller may pass to
// the builder.
type StyleOverrides struct {
	Subtitle SubtitleOverride
	Hook     HookOverride
}

// MergeSubtitleStyle applies o over the defaults, field by field.
func MergeSubtitleStyle(o SubtitleOverride) types.SubtitleStyle {
	s := DefaultSubtitleStyle()
	if o.FontFamily != nil {
		s.FontFamily = *o.FontFamily
	}
	if o.FontSize != nil {
		s.FontSize = *o.FontSize
	}
	if o.FontWeight != nil {
		s.FontWeight = *o.FontWeight
	}
	if o.Color != nil {
		s.Color = *o.Color
	}
	if o.HighlightColor != nil {
		s.HighlightColor = *o.HighlightColor
	}
	if o.StrokeColor != nil {
		s.StrokeColor = *o.StrokeColor
	}
	if o.StrokeWidth != nil {
		s.StrokeWidth = *o.StrokeWidth
	}
	if o.Position != nil {
		s.Position = *o.Position
	}
	return s
}

// MergeHookStyle applies o over the defaults, field by field.
func MergeHookStyle(o HookOverride) types.HookStyle {
	h := DefaultHookStyle()
	if o.Show != nil {
		h.Show = *o.Show
	}
	if o.DurationFrames != nil {
		h.DurationFrames = *o.DurationFrames
	}
	if o.FontFamily != nil {
		h.FontFamily = *o.FontFamily
	}
	if o.FontSize != nil {
		h.FontSize = *o.FontSize
	}
	if o.BackgroundColor != nil {
		h.BackgroundColor = *o.BackgroundColor
	}
	if o.Position != nil {
		h.Position = *o.Position
	}
	return h
}
