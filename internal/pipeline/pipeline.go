// Package pipeline wires the adapters behind the ports and runs one job end
// to end, writing the run manifest when done.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/autocliper/autoclip/internal/ports"
	"github.com/autocliper/autoclip/internal/ports/adapters/deepgram"
	"github.com/autocliper/autoclip/internal/ports/adapters/facedet"
	"github.com/autocliper/autoclip/internal/ports/adapters/ffmpeg"
	"github.com/autocliper/autoclip/internal/ports/adapters/gemini"
	"github.com/autocliper/autoclip/internal/ports/adapters/renderapi"
	"github.com/autocliper/autoclip/internal/ports/adapters/ytdlp"
	"github.com/autocliper/autoclip/internal/usecase"
)

type Config struct {
	SourceURL string
	OutDir    string

	// CacheDir is the base directory for local artifacts (video, audio).
	// If empty, defaults to ".cache".
	CacheDir string

	MaxClips           int
	MinDurationSeconds int
	MaxDurationSeconds int
	Language           string

	FPS    int
	Width  int
	Height int

	FFmpegPath  string
	FFprobePath string

	PythonPath     string
	FaceScriptPath string
	// DisableFaces skips layout detection entirely; every clip uses the
	// centered crop.
	DisableFaces bool

	DeepgramAPIKey string
	DeepgramModel  string

	GeminiAPIKey       string
	GeminiModel        string
	GeminiBaseURL      string
	GeminiAllowedHosts []string

	RenderAPIBaseURL string
	RenderAPIKey     string
	// DryRun builds and validates descriptors without submitting render
	// jobs.
	DryRun bool

	Log zerolog.Logger
}

func (c Config) Validate() error {
	if c.SourceURL == "" {
		return errors.New("source URL is empty")
	}
	if c.MaxClips <= 0 {
		return fmt.Errorf("clips must be > 0")
	}
	if c.MinDurationSeconds <= 0 {
		return fmt.Errorf("min duration must be > 0")
	}
	if c.MaxDurationSeconds < c.MinDurationSeconds {
		return fmt.Errorf("max duration must be >= min duration")
	}
	if c.DeepgramAPIKey == "" {
		return errors.New("deepgram api key is required")
	}
	if c.GeminiAPIKey == "" {
		return errors.New("gemini api key is required")
	}
	if !c.DryRun && c.RenderAPIBaseURL == "" {
		return errors.New("render service base URL is required (or use dry-run)")
	}
	return gemini.ValidateBaseURL(c.GeminiBaseURL, c.GeminiAllowedHosts)
}

func Run(ctx context.Context, cfg Config) error {
	log := cfg.Log

	var faces ports.FaceDetector
	if !cfg.DisableFaces {
		faces = facedet.New(cfg.PythonPath, cfg.FaceScriptPath)
	}
	var renderer ports.RenderService
	if !cfg.DryRun {
		renderer = renderapi.New(cfg.RenderAPIBaseURL, cfg.RenderAPIKey)
	}

	deps := usecase.Deps{
		Downloader:  ytdlp.New(),
		Video:       ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath),
		Transcriber: deepgram.New(cfg.DeepgramAPIKey, cfg.DeepgramModel, ""),
		Oracle:      gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL),
		Faces:       faces,
		Renderer:    renderer,
		Log:         log,
	}
	uc := usecase.New(deps)

	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", hash(cfg.SourceURL))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}
	log.Debug().Str("cache", cacheDir).Msg("workspace prepared")

	outDir := cfg.OutDir
	if outDir == "" {
		outDir = "out"
	}
	runOutDir := buildRunOutDir(outDir, cfg.SourceURL, time.Now().UTC())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		return err
	}
	log.Info().Str("out", runOutDir).Msg("run started")

	res, err := uc.Run(ctx, usecase.Input{
		SourceURL:          cfg.SourceURL,
		CacheDir:           cacheDir,
		MaxClips:           cfg.MaxClips,
		MinDurationSeconds: cfg.MinDurationSeconds,
		MaxDurationSeconds: cfg.MaxDurationSeconds,
		Language:           cfg.Language,
		FPS:                cfg.FPS,
		Width:              cfg.Width,
		Height:             cfg.Height,
	})
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(res.Manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	manifestPath := filepath.Join(runOutDir, "manifest.json")
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return err
	}

	db, err := json.MarshalIndent(res.Descriptors, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal descriptors: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runOutDir, "descriptors.json"), db, 0o644); err != nil {
		return err
	}

	log.Info().Int("clips", len(res.Manifest.Clips)).Str("manifest", manifestPath).Msg("run complete")
	return nil
}

func buildRunOutDir(outRoot, source string, now time.Time) string {
	name := normalizePathSegment(sourceName(source))
	if name == "" {
		name = "source"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", source, now.UTC().UnixNano())
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, hash(runSeed)[:6]))
}

// sourceName extracts a readable stem from a URL or path.
func sourceName(source string) string {
	s := source
	if i := strings.Index(s, "?"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, filepath.Ext(s))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.Downloader = (*ytdlp.Adapter)(nil)
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*deepgram.Adapter)(nil)
var _ ports.Oracle = (*gemini.Adapter)(nil)
var _ ports.FaceDetector = (*facedet.Adapter)(nil)
var _ ports.RenderService = (*renderapi.Adapter)(nil)
