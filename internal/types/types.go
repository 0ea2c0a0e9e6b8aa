package types

// TimedWord is one transcribed token with its time range in seconds.
// Punctuated keeps the surface form with casing/punctuation when the
// transcriber provides one; Text is the bare token.
type TimedWord struct {
	Text       string  `json:"word"`
	Punctuated string  `json:"punctuated_word,omitempty"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Surface returns the punctuated form when present, the bare token otherwise.
func (w TimedWord) Surface() string {
	if w.Punctuated != "" {
		return w.Punctuated
	}
	return w.Text
}

// TimeRange is a [Start, End] span in seconds.
type TimeRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Hook categories the oracle may assign to a segment.
const (
	HookCuriosity    = "CURIOSITY"
	HookControversy  = "CONTROVERSY"
	HookRelatability = "RELATABILITY"
	HookShock        = "SHOCK"
	HookStory        = "STORY"
	HookChallenge    = "CHALLENGE"
)

// Confidence levels the oracle may assign to a segment.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// CandidateSegment is one oracle-proposed highlight. Start/End are HH:MM:SS
// strings as returned by the oracle; they are validated to be convertible and
// consistent with DurationSeconds before a batch is accepted.
type CandidateSegment struct {
	Rank            int    `json:"rank"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationSeconds int    `json:"duration_seconds"`
	HookText        string `json:"hookText"`
	HookCategory    string `json:"hookCategory"`
	Rationale       string `json:"rationale"`
	ViralScore      int    `json:"viralScore"`
	Confidence      string `json:"confidence"`
}

// CropMode selects the vertical-crop strategy for a clip.
type CropMode string

const (
	CropCenter CropMode = "CENTER"
	CropSplit  CropMode = "SPLIT"
)

// Box is a bounding box in relative coordinates (0..1).
type Box struct {
	X      float64 `json:"x" validate:"gte=0,lte=1"`
	Y      float64 `json:"y" validate:"gte=0,lte=1"`
	Width  float64 `json:"width" validate:"gt=0,lte=1"`
	Height float64 `json:"height" validate:"gt=0,lte=1"`
}

// LayoutDecision is the per-segment crop layout reported by the face
// detector. Boxes is only meaningful when Mode is SPLIT.
type LayoutDecision struct {
	FaceCount int      `json:"face_count"`
	Mode      CropMode `json:"mode"`
	Boxes     []Box    `json:"boxes,omitempty"`
}

// CaptionWord is one subtitle word inside a render descriptor.
type CaptionWord struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SubtitleStyle configures the word-by-word caption track.
type SubtitleStyle struct {
	FontFamily     string `json:"fontFamily" validate:"required"`
	FontSize       int    `json:"fontSize" validate:"gt=0"`
	FontWeight     int    `json:"fontWeight" validate:"gt=0"`
	Color          string `json:"color" validate:"required"`
	HighlightColor string `json:"highlightColor" validate:"required"`
	StrokeColor    string `json:"strokeColor" validate:"required"`
	StrokeWidth    int    `json:"strokeWidth" validate:"gte=0"`
	Position       string `json:"position" validate:"required"`
}

// HookStyle configures the on-screen teaser shown at clip start.
type HookStyle struct {
	Show            bool   `json:"show"`
	DurationFrames  int    `json:"durationFrames" validate:"gt=0"`
	FontFamily      string `json:"fontFamily" validate:"required"`
	FontSize        int    `json:"fontSize" validate:"gt=0"`
	BackgroundColor string `json:"backgroundColor" validate:"required"`
	Position        string `json:"position" validate:"required"`
}

// RenderDescriptor is the fully resolved recipe for one output clip,
// handed as-is to the render service. CropData is present iff CropMode is
// SPLIT.
type RenderDescriptor struct {
	ID               string        `json:"id" validate:"required"`
	FPS              int           `json:"fps" validate:"gt=0"`
	Width            int           `json:"width" validate:"gt=0"`
	Height           int           `json:"height" validate:"gt=0"`
	DurationInFrames int           `json:"durationInFrames" validate:"gt=0"`
	VideoSrc         string        `json:"videoSrc" validate:"required"`
	VideoStartTime   float64       `json:"videoStartTime" validate:"gte=0"`
	CropMode         CropMode      `json:"cropMode" validate:"oneof=CENTER SPLIT"`
	CropData         *Box          `json:"cropData,omitempty" validate:"required_if=CropMode SPLIT,omitempty"`
	Words            []CaptionWord `json:"words"`
	SubtitleStyle    SubtitleStyle `json:"subtitleStyle"`
	HookStyle        HookStyle     `json:"hookStyle"`
	HookText         string        `json:"hookText" validate:"required"`
}

// Manifest summarizes one pipeline run.
type Manifest struct {
	Source string         `json:"source"`
	Video  string         `json:"video"`
	Clips  []ManifestClip `json:"clips"`
}

// ManifestClip is one produced (or submitted) clip in the run manifest.
type ManifestClip struct {
	ID           string  `json:"id"`
	Rank         int     `json:"rank"`
	StartSec     float64 `json:"start_sec"`
	EndSec       float64 `json:"end_sec"`
	HookText     string  `json:"hook_text"`
	HookCategory string  `json:"hook_category"`
	ViralScore   int     `json:"viral_score"`
	Confidence   string  `json:"confidence"`
	CropMode     string  `json:"crop_mode"`
	RenderJobID  string  `json:"render_job_id,omitempty"`
	OutputURL    string  `json:"output_url,omitempty"`
}
