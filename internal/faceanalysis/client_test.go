package faceanalysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
			t.Errorf("expected image in body, err=%v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnalyzeSuccess(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{
		"success": true,
		"analysis": {"skin_tone": "medium", "undertone": "warm", "concerns": ["acne", "fine_lines"], "emotion": "happy"},
		"annotatedImage": "data:image/jpeg;base64,xyz"
	}`)
	client := NewClient(srv.URL+"/", time.Second, zap.NewNop())

	res, err := client.Analyze(context.Background(), "data:image/jpeg;base64,abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Analysis.SkinTone != "medium" || res.Analysis.Undertone != "warm" {
		t.Fatalf("unexpected analysis %+v", res.Analysis)
	}
	if len(res.Analysis.Concerns) != 2 || res.AnnotatedImage == "" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestAnalyzeRejected(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"success": false, "error": "No face detected"}`)
	client := NewClient(srv.URL, time.Second, zap.NewNop())

	_, err := client.Analyze(context.Background(), "data:image/jpeg;base64,abc")
	if !errors.Is(err, ErrAnalysisRejected) {
		t.Fatalf("expected ErrAnalysisRejected, got %v", err)
	}
	var rejected *RejectedError
	if !errors.As(err, &rejected) || rejected.Message != "No face detected" {
		t.Fatalf("expected service message, got %v", err)
	}
}

func TestAnalyzeServerError(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, `{"success": false, "error": "boom"}`)
	client := NewClient(srv.URL, time.Second, zap.NewNop())

	_, err := client.Analyze(context.Background(), "data:image/jpeg;base64,abc")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestAnalyzeEmptyImage(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, zap.NewNop())
	if _, err := client.Analyze(context.Background(), "  "); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	client := NewClient(srv.URL, time.Second, zap.NewNop())

	for i := 0; i < 5; i++ {
		if _, err := client.Analyze(context.Background(), "img"); !errors.Is(err, ErrServiceUnavailable) {
			t.Fatalf("call %d: expected ErrServiceUnavailable, got %v", i, err)
		}
	}
	if _, err := client.Analyze(context.Background(), "img"); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected open circuit to report unavailable, got %v", err)
	}
	if calls != 5 {
		t.Fatalf("expected breaker to short-circuit the sixth call, server saw %d", calls)
	}
}

func TestRejectionsDoNotTripBreaker(t *testing.T) {
	srv := newTestServer(t, http.StatusBadRequest, `{"success": false, "error": "Multiple faces detected"}`)
	client := NewClient(srv.URL, time.Second, zap.NewNop())

	for i := 0; i < 8; i++ {
		if _, err := client.Analyze(context.Background(), "img"); !errors.Is(err, ErrAnalysisRejected) {
			t.Fatalf("call %d: expected rejection, got %v", i, err)
		}
	}
}
