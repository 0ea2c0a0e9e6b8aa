// Package usecase orchestrates the clip pipeline over the collaborator
// ports: download, transcribe, select segments, resolve layouts, build and
// validate descriptors, then submit render jobs.
package usecase

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/autocliper/autoclip/internal/domain/layout"
	"github.com/autocliper/autoclip/internal/domain/props"
	"github.com/autocliper/autoclip/internal/domain/segments"
	"github.com/autocliper/autoclip/internal/domain/timestamp"
	"github.com/autocliper/autoclip/internal/ports"
	"github.com/autocliper/autoclip/internal/types"
)

// maxConcurrentRenders matches the render service's own job cap; more
// in-flight submissions just queue server-side.
const maxConcurrentRenders = 2

type Deps struct {
	Downloader  ports.Downloader
	Video       ports.VideoTool
	Transcriber ports.Transcriber
	Oracle      ports.Oracle
	// Faces may be nil; layout detection degrades to CENTER.
	Faces ports.FaceDetector
	// Renderer may be nil; descriptors are built and validated but no jobs
	// are submitted.
	Renderer ports.RenderService

	Log zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	SourceURL string
	CacheDir  string

	MaxClips           int
	MinDurationSeconds int
	MaxDurationSeconds int
	Language           string

	FPS    int
	Width  int
	Height int
}

type Result struct {
	Manifest    types.Manifest
	Descriptors []types.RenderDescriptor
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := u.d.Log

	video, err := u.d.Downloader.Download(ctx, in.SourceURL, in.CacheDir)
	if err != nil {
		return Result{}, fmt.Errorf("download source: %w", err)
	}
	log.Info().Str("video", video).Msg("source downloaded")

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, video, wav); err != nil {
		return Result{}, fmt.Errorf("extract audio: %w", err)
	}

	words, err := u.d.Transcriber.Transcribe(ctx, wav, in.Language)
	if err != nil {
		return Result{}, fmt.Errorf("transcribe: %w", err)
	}
	log.Info().Int("words", len(words)).Msg("transcription complete")

	selector := segments.New(u.d.Oracle)
	segs, err := selector.Select(ctx, words, segments.Options{
		MaxSegments:        in.MaxClips,
		MinDurationSeconds: in.MinDurationSeconds,
		MaxDurationSeconds: in.MaxDurationSeconds,
		Language:           in.Language,
	})
	if err != nil {
		return Result{}, fmt.Errorf("select segments: %w", err)
	}
	log.Info().Int("segments", len(segs)).Msg("segments selected")

	ranges, err := segmentRanges(segs)
	if err != nil {
		return Result{}, err
	}

	decisions, degraded := layout.SafeResolve(ctx, u.d.Faces, video, ranges)
	if degraded != nil {
		log.Warn().Err(degraded).Msg("face layout degraded")
	}

	descriptors, err := props.Build(video, segs, words, decisions, props.Config{
		FPS:    in.FPS,
		Width:  in.Width,
		Height: in.Height,
	})
	if err != nil {
		return Result{}, fmt.Errorf("build descriptors: %w", err)
	}
	if err := props.ValidateAll(descriptors); err != nil {
		return Result{}, fmt.Errorf("validate descriptors: %w", err)
	}
	log.Info().Int("descriptors", len(descriptors)).Msg("descriptors built")

	manifest := types.Manifest{Source: in.SourceURL, Video: video}
	clips := make([]types.ManifestClip, len(descriptors))
	for i, d := range descriptors {
		clips[i] = types.ManifestClip{
			ID:           d.ID,
			Rank:         segs[i].Rank,
			StartSec:     ranges[i].Start,
			EndSec:       ranges[i].End,
			HookText:     segs[i].HookText,
			HookCategory: segs[i].HookCategory,
			ViralScore:   segs[i].ViralScore,
			Confidence:   segs[i].Confidence,
			CropMode:     string(d.CropMode),
		}
	}

	if u.d.Renderer != nil {
		if err := u.renderAll(ctx, descriptors, clips); err != nil {
			return Result{}, err
		}
	}

	manifest.Clips = clips
	return Result{Manifest: manifest, Descriptors: descriptors}, nil
}

// renderAll submits every descriptor and waits for completion, at most
// maxConcurrentRenders jobs in flight. Results land in clips by index.
func (u Usecase) renderAll(ctx context.Context, descriptors []types.RenderDescriptor, clips []types.ManifestClip) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRenders)

	for i := range descriptors {
		g.Go(func() error {
			jobID, err := u.d.Renderer.Submit(gctx, descriptors[i])
			if err != nil {
				return fmt.Errorf("submit render %s: %w", descriptors[i].ID, err)
			}
			clips[i].RenderJobID = jobID
			u.d.Log.Info().Str("descriptor", descriptors[i].ID).Str("job", jobID).Msg("render submitted")

			res, err := u.d.Renderer.Wait(gctx, jobID)
			if err != nil {
				return fmt.Errorf("render %s: %w", jobID, err)
			}
			clips[i].OutputURL = res.OutputURL
			u.d.Log.Info().Str("job", jobID).Str("output", res.OutputURL).Msg("render finished")
			return nil
		})
	}
	return g.Wait()
}

// segmentRanges converts validated segment timestamps to seconds. The
// selector guarantees convertibility; a failure here is an integrity bug.
func segmentRanges(segs []types.CandidateSegment) ([]types.TimeRange, error) {
	out := make([]types.TimeRange, len(segs))
	for i, s := range segs {
		start, err := timestamp.FromTimestamp(s.Start)
		if err != nil {
			return nil, fmt.Errorf("segment %d start: %w", i, err)
		}
		end, err := timestamp.FromTimestamp(s.End)
		if err != nil {
			return nil, fmt.Errorf("segment %d end: %w", i, err)
		}
		out[i] = types.TimeRange{Start: start, End: end}
	}
	return out, nil
}
