package fal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantVideo string
		wantThumb string
	}{
		{
			name:      "nested video object",
			raw:       `{"video":{"url":"https://cdn.example.com/out.mp4","thumbnail_url":"https://cdn.example.com/out.jpg"}}`,
			wantVideo: "https://cdn.example.com/out.mp4",
			wantThumb: "https://cdn.example.com/out.jpg",
		},
		{
			name:      "flat video_url",
			raw:       `{"video_url":"https://cdn.example.com/out.mp4","thumbnail_url":"https://cdn.example.com/out.jpg"}`,
			wantVideo: "https://cdn.example.com/out.mp4",
			wantThumb: "https://cdn.example.com/out.jpg",
		},
		{
			name:      "flat url",
			raw:       `{"url":"https://cdn.example.com/out.mp4"}`,
			wantVideo: "https://cdn.example.com/out.mp4",
		},
		{
			name:      "nested video wins over flat fields",
			raw:       `{"video":{"url":"https://cdn.example.com/nested.mp4"},"video_url":"https://cdn.example.com/flat.mp4"}`,
			wantVideo: "https://cdn.example.com/nested.mp4",
		},
		{name: "empty payload", raw: `{}`},
		{name: "nothing", raw: ``},
		{name: "invalid json", raw: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			video, thumb := ParseResult(json.RawMessage(tt.raw))
			if video != tt.wantVideo {
				t.Errorf("video = %q, want %q", video, tt.wantVideo)
			}
			if thumb != tt.wantThumb {
				t.Errorf("thumbnail = %q, want %q", thumb, tt.wantThumb)
			}
		})
	}
}

func TestParseResultError(t *testing.T) {
	if got := ParseResultError(json.RawMessage(`{"detail":"prompt violates content policy"}`)); got != "prompt violates content policy" {
		t.Errorf("unexpected detail %q", got)
	}
	if got := ParseResultError(json.RawMessage(`{}`)); got != "" {
		t.Errorf("expected empty detail, got %q", got)
	}
	if got := ParseResultError(nil); got != "" {
		t.Errorf("expected empty detail for nil payload, got %q", got)
	}
}

func TestSubmit_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/fal-ai/kling-video/v2.5-turbo/pro/text-to-video" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Key test-key" {
			t.Errorf("expected Key test-key, got %s", r.Header.Get("Authorization"))
		}

		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if payload["prompt"] != "a lantern festival" {
			t.Errorf("unexpected prompt %v", payload["prompt"])
		}

		_ = json.NewEncoder(w).Encode(submitResponse{RequestID: "req-abc"})
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithBaseURL(server.URL))

	requestID, err := client.Submit(context.Background(), "fal-ai/kling-video/v2.5-turbo/pro/text-to-video",
		map[string]string{"prompt": "a lantern festival"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requestID != "req-abc" {
		t.Errorf("expected req-abc, got %s", requestID)
	}
}

func TestSubmit_MissingKey(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	t.Setenv("FAL_KEY", "")
	client := NewClient(WithBaseURL(server.URL))

	_, err := client.Submit(context.Background(), "fal-ai/veo3", map[string]string{"prompt": "p"})
	if err != ErrAPIKeyNotSet {
		t.Errorf("expected ErrAPIKeyNotSet, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("expected no HTTP calls, got %d", hits)
	}
}

func TestSubmit_EmptyEndpoint(t *testing.T) {
	client := NewClient(WithAPIKey("test-key"))

	_, err := client.Submit(context.Background(), "", map[string]string{"prompt": "p"})
	if err != ErrAppRequired {
		t.Errorf("expected ErrAppRequired, got %v", err)
	}
}

func TestSubmit_NoRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(submitResponse{})
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithBaseURL(server.URL))

	_, err := client.Submit(context.Background(), "fal-ai/veo3", map[string]string{"prompt": "p"})
	if err != ErrNoRequestID {
		t.Errorf("expected ErrNoRequestID, got %v", err)
	}
}

func TestSubmit_NeverRetries(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
		WithMaxRetries(3),
		WithBaseBackoff(10*time.Millisecond),
	)

	_, err := client.Submit(context.Background(), "fal-ai/veo3", map[string]string{"prompt": "p"})
	if err == nil {
		t.Error("expected error")
	}
	if atomic.LoadInt32(&attempts) != 1 {
		t.Errorf("expected exactly 1 attempt for a submission, got %d", attempts)
	}
}

func TestGetStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/fal-ai/kling-video/requests/req-abc/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(QueueStatus{Status: StatusInProgress})
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithBaseURL(server.URL))

	status, err := client.GetStatus(context.Background(), "fal-ai/kling-video", "req-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != StatusInProgress {
		t.Errorf("expected IN_PROGRESS, got %s", status.Status)
	}
}

func TestGetStatus_RetriesTransientFailure(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(QueueStatus{Status: StatusCompleted})
	}))
	defer server.Close()

	client := NewClient(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
		WithMaxRetries(3),
		WithBaseBackoff(10*time.Millisecond),
	)

	status, err := client.GetStatus(context.Background(), "fal-ai/kling-video", "req-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Status != StatusCompleted {
		t.Errorf("expected COMPLETED, got %s", status.Status)
	}
	if atomic.LoadInt32(&attempts) != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestGetStatus_MissingArguments(t *testing.T) {
	client := NewClient(WithAPIKey("test-key"))

	if _, err := client.GetStatus(context.Background(), "", "req-abc"); err != ErrAppRequired {
		t.Errorf("expected ErrAppRequired, got %v", err)
	}
	if _, err := client.GetStatus(context.Background(), "fal-ai/veo3", ""); err != ErrRequestIDRequired {
		t.Errorf("expected ErrRequestIDRequired, got %v", err)
	}
}

func TestGetResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fal-ai/kling-video/requests/req-abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"video":{"url":"https://cdn.example.com/out.mp4"}}`))
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithBaseURL(server.URL))

	raw, err := client.GetResult(context.Background(), "fal-ai/kling-video", "req-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	video, _ := ParseResult(raw)
	if video != "https://cdn.example.com/out.mp4" {
		t.Errorf("unexpected video URL %q", video)
	}
}

func TestCancelRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/fal-ai/kling-video/requests/req-abc/cancel" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithAPIKey("test-key"), WithBaseURL(server.URL))

	if err := client.CancelRequest(context.Background(), "fal-ai/kling-video", "req-abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
