// Package renderapi is the client for the external clip-rendering service:
// submit a descriptor as a render job, then poll until it finishes.
package renderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/ports"
	"github.com/autocliper/autoclip/internal/types"
)

const defaultPollInterval = 5 * time.Second

type Adapter struct {
	baseURL      string
	key          string
	client       *http.Client
	pollInterval time.Duration
}

func New(baseURL, apiKey string) *Adapter {
	return &Adapter{
		baseURL:      strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		key:          apiKey,
		client:       &http.Client{Timeout: 60 * time.Second},
		pollInterval: defaultPollInterval,
	}
}

// WithPollInterval overrides the job polling cadence.
func (a *Adapter) WithPollInterval(d time.Duration) *Adapter {
	if d > 0 {
		a.pollInterval = d
	}
	return a
}

type submitRequest struct {
	Props types.RenderDescriptor `json:"props"`
}

type jobResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	OutputURL string `json:"output_url"`
	Error     string `json:"error"`
}

// Submit enqueues one render job and returns its id.
func (a *Adapter) Submit(ctx context.Context, d types.RenderDescriptor) (string, error) {
	if a.baseURL == "" {
		return "", errs.Configuration("render service base URL is missing")
	}

	body, err := json.Marshal(submitRequest{Props: d})
	if err != nil {
		return "", fmt.Errorf("marshal render job: %w", err)
	}

	var job jobResponse
	if err := a.do(ctx, http.MethodPost, a.baseURL+"/v1/renders", body, &job); err != nil {
		return "", err
	}
	if job.ID == "" {
		return "", errs.MalformedOutput("render service returned no job id")
	}
	return job.ID, nil
}

// Wait polls the job until it is done or failed. Cancellation propagates
// through ctx.
func (a *Adapter) Wait(ctx context.Context, jobID string) (ports.RenderResult, error) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		var job jobResponse
		if err := a.do(ctx, http.MethodGet, a.baseURL+"/v1/renders/"+jobID, nil, &job); err != nil {
			return ports.RenderResult{}, err
		}

		switch job.Status {
		case "done":
			return ports.RenderResult{JobID: jobID, OutputURL: job.OutputURL}, nil
		case "failed":
			return ports.RenderResult{}, errs.Transport("render job failed").
				NotRetryable().
				WithDetail("job", jobID).
				WithDetail("reason", job.Error)
		case "queued", "rendering":
		default:
			return ports.RenderResult{}, errs.MalformedOutput("render service reported unknown job status").
				WithDetail("job", jobID).
				WithDetail("status", job.Status)
		}

		select {
		case <-ctx.Done():
			return ports.RenderResult{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *Adapter) do(ctx context.Context, method, url string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.key != "" {
		req.Header.Set("Authorization", "Bearer "+a.key)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return errs.Transport("render service request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		e := errs.Transport(fmt.Sprintf("render service status %d", resp.StatusCode)).
			WithDetail("body", truncate(string(rb), 300))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			e = e.NotRetryable()
		}
		return e
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.MalformedOutput("render service response is not valid JSON").WithCause(err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
