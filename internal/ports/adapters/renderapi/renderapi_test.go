package renderapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/autocliper/autoclip/internal/errs"
	"github.com/autocliper/autoclip/internal/types"
)

func descriptor() types.RenderDescriptor {
	return types.RenderDescriptor{ID: "clip-1", VideoSrc: "video.mp4"}
}

func TestSubmit_PostsPropsAndReturnsID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/renders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("auth header = %q", got)
		}
		var req submitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.Props.ID != "clip-1" {
			t.Errorf("props id = %q", req.Props.ID)
		}
		w.Write([]byte(`{"id":"job-7","status":"queued"}`))
	}))
	defer srv.Close()

	id, err := New(srv.URL, "tok").Submit(context.Background(), descriptor())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "job-7" {
		t.Fatalf("job id = %q", id)
	}
}

func TestSubmit_EmptyIDIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Submit(context.Background(), descriptor())
	if !errs.IsMalformedOutput(err) {
		t.Fatalf("expected malformed-output error, got %v", err)
	}
}

func TestWait_PollsUntilDone(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/renders/job-7" {
			t.Errorf("unexpected poll path %q", r.URL.Path)
		}
		n := polls.Add(1)
		if n < 3 {
			fmt.Fprintf(w, `{"id":"job-7","status":"rendering"}`)
			return
		}
		fmt.Fprintf(w, `{"id":"job-7","status":"done","output_url":"https://cdn.example.com/out.mp4"}`)
	}))
	defer srv.Close()

	res, err := New(srv.URL, "").WithPollInterval(time.Millisecond).Wait(context.Background(), "job-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OutputURL != "https://cdn.example.com/out.mp4" {
		t.Fatalf("output url = %q", res.OutputURL)
	}
	if polls.Load() < 3 {
		t.Fatalf("expected at least 3 polls, got %d", polls.Load())
	}
}

func TestWait_FailedJobNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"job-7","status":"failed","error":"font missing"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").WithPollInterval(time.Millisecond).Wait(context.Background(), "job-7")
	if err == nil || errs.IsRetryable(err) {
		t.Fatalf("expected non-retryable failure, got %v", err)
	}
}

func TestWait_UnknownStatusIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"job-7","status":"levitating"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").WithPollInterval(time.Millisecond).Wait(context.Background(), "job-7")
	if !errs.IsMalformedOutput(err) {
		t.Fatalf("expected malformed-output error, got %v", err)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"job-7","status":"rendering"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL, "").WithPollInterval(10 * time.Millisecond).Wait(ctx, "job-7")
	if err == nil {
		t.Fatal("expected context error")
	}
}
