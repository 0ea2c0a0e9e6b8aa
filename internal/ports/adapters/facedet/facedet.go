// Package facedet bridges to the out-of-process face detector. The detector
// takes the video path and a JSON array of segments on argv and prints one
// JSON object on stdout with a decision per segment.
package facedet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/autocliper/autoclip/internal/types"
)

type Adapter struct {
	python string
	script string
}

func New(pythonPath, scriptPath string) *Adapter {
	if pythonPath == "" {
		pythonPath = "python3"
	}
	if scriptPath == "" {
		scriptPath = "scripts/face_detector.py"
	}
	return &Adapter{python: pythonPath, script: scriptPath}
}

func (a *Adapter) ResolveLayout(ctx context.Context, videoPath string, ranges []types.TimeRange) ([]types.LayoutDecision, error) {
	payload, err := json.Marshal(ranges)
	if err != nil {
		return nil, fmt.Errorf("marshal segments: %w", err)
	}

	cmd := exec.CommandContext(ctx, a.python, a.script, videoPath, string(payload))
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("face detector failed: %w\n%s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("face detector failed: %w", err)
	}

	return parseOutput(out, len(ranges))
}

type detectorOutput struct {
	Error   string `json:"error"`
	Results []struct {
		SegmentIndex int         `json:"segment_index"`
		FaceCount    int         `json:"face_count"`
		Mode         string      `json:"mode"`
		Boxes        []types.Box `json:"boxes"`
	} `json:"results"`
}

// parseOutput maps the detector's stdout to ordered decisions. Results carry
// an explicit segment index; order them rather than trusting emit order.
func parseOutput(out []byte, want int) ([]types.LayoutDecision, error) {
	var parsed detectorOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("parse face detector output: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("face detector: %s", parsed.Error)
	}
	if len(parsed.Results) != want {
		return nil, fmt.Errorf("face detector returned %d results for %d segments", len(parsed.Results), want)
	}

	results := parsed.Results
	sort.Slice(results, func(i, j int) bool {
		return results[i].SegmentIndex < results[j].SegmentIndex
	})

	decisions := make([]types.LayoutDecision, len(results))
	for i, r := range results {
		if r.SegmentIndex != i {
			return nil, fmt.Errorf("face detector result indexes are not 0..%d", want-1)
		}
		decisions[i] = types.LayoutDecision{
			FaceCount: r.FaceCount,
			Mode:      types.CropMode(r.Mode),
			Boxes:     r.Boxes,
		}
	}
	return decisions, nil
}
