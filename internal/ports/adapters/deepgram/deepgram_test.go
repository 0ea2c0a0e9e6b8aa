package deepgram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/autocliper/autoclip/internal/errs"
)

func writeWav(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "audio.wav")
	if err := os.WriteFile(p, []byte("RIFF....WAVE"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestTranscribe_ParsesPunctuatedWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token k" {
			t.Errorf("auth header = %q", got)
		}
		q := r.URL.Query()
		if q.Get("punctuate") != "true" || q.Get("language") != "id" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"words":[
			{"word":"halo","punctuated_word":"Halo,","start":0.1,"end":0.4,"confidence":0.99},
			{"word":"dunia","punctuated_word":"dunia.","start":0.5,"end":0.9,"confidence":0.97}
		]}]}]}}`))
	}))
	defer srv.Close()

	words, err := New("k", "", srv.URL).Transcribe(context.Background(), writeWav(t), "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Punctuated != "Halo," || words[0].Text != "halo" {
		t.Fatalf("unexpected first word %+v", words[0])
	}
	if words[1].Start != 0.5 || words[1].End != 0.9 {
		t.Fatalf("unexpected timing %+v", words[1])
	}
}

func TestTranscribe_SkipsDegenerateWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"words":[
			{"word":"  ","start":0,"end":1},
			{"word":"bad","start":2,"end":1},
			{"word":"ok","punctuated_word":"Ok.","start":1,"end":2}
		]}]}]}}`))
	}))
	defer srv.Close()

	words, err := New("k", "", srv.URL).Transcribe(context.Background(), writeWav(t), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 1 || words[0].Text != "ok" {
		t.Fatalf("expected only the valid word, got %+v", words)
	}
}

func TestTranscribe_UnauthorizedIsConfiguration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := New("bad", "", srv.URL).Transcribe(context.Background(), writeWav(t), "")
	if !errs.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTranscribe_RateLimitRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New("k", "", srv.URL).Transcribe(context.Background(), writeWav(t), "")
	if !errs.IsTransport(err) || !errs.IsRetryable(err) {
		t.Fatalf("expected retryable transport error, got %v", err)
	}
}

func TestTranscribe_EmptyTranscriptIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"words":[]}]}]}}`))
	}))
	defer srv.Close()

	_, err := New("k", "", srv.URL).Transcribe(context.Background(), writeWav(t), "")
	if !errs.IsMalformedOutput(err) {
		t.Fatalf("expected malformed-output error, got %v", err)
	}
}

func TestTranscribe_MissingKey(t *testing.T) {
	_, err := New("", "", "").Transcribe(context.Background(), writeWav(t), "")
	if !errs.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
