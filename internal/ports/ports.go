// Package ports declares the narrow interfaces the pipeline consumes from
// its external collaborators. Adapters live under ports/adapters and are
// wired in the pipeline package.
package ports

import (
	"context"
	"time"

	"github.com/autocliper/autoclip/internal/types"
)

// Downloader fetches a remote source video into destDir and returns the
// local file path.
type Downloader interface {
	Download(ctx context.Context, url, destDir string) (string, error)
}

// VideoTool covers local transcoding needs.
type VideoTool interface {
	ExtractAudioMono16k(ctx context.Context, inVideo, outWav string) error
	ProbeDuration(ctx context.Context, inVideo string) (time.Duration, error)
}

// Transcriber converts audio into ordered word timings.
type Transcriber interface {
	Transcribe(ctx context.Context, wavPath, language string) ([]types.TimedWord, error)
}

// Oracle produces a text completion for a prompt.
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// FaceDetector reports a layout decision per time range, in order.
type FaceDetector interface {
	ResolveLayout(ctx context.Context, videoPath string, ranges []types.TimeRange) ([]types.LayoutDecision, error)
}

// RenderResult is one finished render job.
type RenderResult struct {
	JobID     string
	OutputURL string
}

// RenderService submits render jobs and waits for their completion.
type RenderService interface {
	Submit(ctx context.Context, d types.RenderDescriptor) (string, error)
	Wait(ctx context.Context, jobID string) (RenderResult, error)
}
