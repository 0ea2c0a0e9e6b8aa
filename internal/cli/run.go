package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/autocliper/autoclip/internal/pipeline"
)

func run(cmd *cobra.Command, sourceURL string) error {
	outDir, _ := cmd.Flags().GetString("out")
	clipsN, _ := cmd.Flags().GetInt("clips")
	minSec, _ := cmd.Flags().GetInt("min")
	maxSec, _ := cmd.Flags().GetInt("max")
	lang, _ := cmd.Flags().GetString("lang")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noFaces, _ := cmd.Flags().GetBool("no-faces")

	v := newEnv()
	log := newLogger(verbose)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Hour)
	defer cancel()

	cfg := pipeline.Config{
		SourceURL: sourceURL,
		OutDir:    outDir,
		CacheDir:  v.GetString("cache_dir"),

		MaxClips:           clipsN,
		MinDurationSeconds: minSec,
		MaxDurationSeconds: maxSec,
		Language:           lang,

		FFmpegPath:  v.GetString("ffmpeg_path"),
		FFprobePath: v.GetString("ffprobe_path"),

		PythonPath:     v.GetString("python_path"),
		FaceScriptPath: v.GetString("face_script"),
		DisableFaces:   noFaces || v.GetString("face_script") == "",

		DeepgramAPIKey: v.GetString("deepgram_api_key"),
		DeepgramModel:  v.GetString("deepgram_model"),

		GeminiAPIKey:  v.GetString("gemini_api_key"),
		GeminiModel:   v.GetString("gemini_model"),
		GeminiBaseURL: v.GetString("gemini_base_url"),

		RenderAPIBaseURL: v.GetString("render_api_base_url"),
		RenderAPIKey:     v.GetString("render_api_key"),
		DryRun:           dryRun,

		Log: log,
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(ctx, cfg)
}

// newEnv binds configuration to AUTOCLIP_* environment variables, with
// fallbacks to the bare provider names most people already have exported.
func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("autoclip")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, bare := range map[string]string{
		"deepgram_api_key": "DEEPGRAM_API_KEY",
		"gemini_api_key":   "GEMINI_API_KEY",
	} {
		if v.GetString(key) == "" {
			if val := os.Getenv(bare); val != "" {
				v.Set(key, val)
			}
		}
	}

	v.SetDefault("ffmpeg_path", "ffmpeg")
	v.SetDefault("ffprobe_path", "ffprobe")
	v.SetDefault("python_path", "python3")
	v.SetDefault("deepgram_model", "nova-2")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	return v
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
