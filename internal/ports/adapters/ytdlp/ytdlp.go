// Package ytdlp downloads the source video through yt-dlp.
package ytdlp

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/autocliper/autoclip/internal/errs"
)

type Adapter struct {
	// install ensures a yt-dlp binary is available before the first run.
	install bool
}

func New() *Adapter { return &Adapter{install: true} }

// Download fetches url as an mp4 under destDir and returns the local path.
func (a *Adapter) Download(ctx context.Context, url, destDir string) (string, error) {
	if a.install {
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			return "", errs.Configuration("yt-dlp is not installed and could not be fetched").WithCause(err)
		}
		a.install = false
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	outTemplate := filepath.Join(destDir, "source.%(ext)s")
	var finished string
	dl := ytdlp.New().
		FormatSort("res,ext:mp4:m4a").
		RecodeVideo("mp4").
		ForceOverwrites().
		Output(outTemplate).
		ProgressFunc(500*time.Millisecond, func(p ytdlp.ProgressUpdate) {
			if p.Status == ytdlp.ProgressStatusFinished && p.Filename != "" {
				finished = p.Filename
			}
		})

	if _, err := dl.Run(ctx, url); err != nil {
		return "", errs.Transport("video download failed").
			WithDetail("url", url).
			WithCause(err)
	}

	if finished == "" {
		finished = filepath.Join(destDir, "source.mp4")
	}
	if _, err := os.Stat(finished); err != nil {
		return "", errs.Transport("downloaded file is missing").
			WithDetail("path", finished).
			WithCause(err)
	}
	return finished, nil
}
