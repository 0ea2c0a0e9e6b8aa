// Package deepgram transcribes audio through Deepgram's prerecorded API,
// returning punctuated word timings.
package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/types"
)

const (
	defaultBaseURL = "https://api.deepgram.com"
	defaultModel   = "nova-2"

	requestTimeout = 10 * time.Minute
)

type Adapter struct {
	key     string
	model   string
	baseURL string
	client  *http.Client
}

func New(apiKey, model, baseURL string) *Adapter {
	if model == "" {
		model = defaultModel
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Adapter{
		key:     apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Words []struct {
					Word       string  `json:"word"`
					Punctuated string  `json:"punctuated_word"`
					Start      float64 `json:"start"`
					End        float64 `json:"end"`
					Confidence float64 `json:"confidence"`
				} `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath, language string) ([]types.TimedWord, error) {
	if a.key == "" {
		return nil, errs.Configuration("deepgram api key is missing")
	}

	f, err := os.Open(wavPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	q := url.Values{}
	q.Set("model", a.model)
	q.Set("punctuate", "true")
	q.Set("smart_format", "true")
	if language != "" {
		q.Set("language", language)
	}
	endpoint := a.baseURL + "/v1/listen?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, f)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+a.key)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errs.Transport("deepgram request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		msg := fmt.Sprintf("deepgram status %d", resp.StatusCode)
		e := errs.Transport(msg).WithDetail("body", truncate(string(body), 300))
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, errs.Configuration("deepgram rejected the api key").
				WithDetail("status", resp.StatusCode)
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			e = e.NotRetryable()
		}
		return nil, e
	}

	var out listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errs.MalformedOutput("deepgram response is not valid JSON").WithCause(err)
	}
	if len(out.Results.Channels) == 0 || len(out.Results.Channels[0].Alternatives) == 0 {
		return nil, errs.MalformedOutput("deepgram response has no transcription alternatives")
	}

	raw := out.Results.Channels[0].Alternatives[0].Words
	words := make([]types.TimedWord, 0, len(raw))
	for _, w := range raw {
		if w.End < w.Start || strings.TrimSpace(w.Word) == "" {
			continue
		}
		words = append(words, types.TimedWord{
			Text:       w.Word,
			Punctuated: w.Punctuated,
			Start:      w.Start,
			End:        w.End,
			Confidence: w.Confidence,
		})
	}
	if len(words) == 0 {
		return nil, errs.MalformedOutput("transcription contains no words")
	}
	return words, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
