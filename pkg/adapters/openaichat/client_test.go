package openaichat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/user/reportsnap/pkg/adapters/logger"
	"github.com/user/reportsnap/pkg/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	c := NewClient("test-key", logger.NewNoop(), WithBaseURL(server.URL))
	return c, server
}

func TestCompleteReturnsContent(t *testing.T) {
	var gotReq chatRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"<html>report</html>"}}]}`)
	})

	got, err := c.Complete(context.Background(), ports.ChatRequest{
		Messages: []ports.ChatMessage{
			{Role: "system", Content: "template"},
			{Role: "user", Content: "transcript"},
		},
		Temperature: 0.7,
		MaxTokens:   100000,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "<html>report</html>" {
		t.Errorf("unexpected content: %s", got)
	}
	if gotReq.Model != defaultModel {
		t.Errorf("expected default model, got %s", gotReq.Model)
	}
	if gotReq.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", gotReq.Temperature)
	}
	if gotReq.MaxTokens != 100000 {
		t.Errorf("expected max tokens 100000, got %d", gotReq.MaxTokens)
	}
	if gotReq.Stream {
		t.Error("blocking request should not set stream")
	}
}

func TestCompleteModelOverride(t *testing.T) {
	var gotReq chatRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
	})

	_, err := c.Complete(context.Background(), ports.ChatRequest{
		Messages: []ports.ChatMessage{{Role: "user", Content: "hi"}},
		Model:    "gpt-4o",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if gotReq.Model != "gpt-4o" {
		t.Errorf("request model should override default, got %s", gotReq.Model)
	}
}

func TestCompleteRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"rate limited"}}`)
			return
		}
		fmt.Fprint(w, `{"choices":[{"message":{"content":"recovered"}}]}`)
	})

	got, err := c.Complete(context.Background(), ports.ChatRequest{
		Messages: []ports.ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "recovered" {
		t.Errorf("unexpected content: %s", got)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", calls.Load())
	}
}

func TestCompleteNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"bad model"}}`)
	})

	_, err := c.Complete(context.Background(), ports.ChatRequest{
		Messages: []ports.ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "bad model") {
		t.Errorf("error should carry API message: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("client errors should not retry, got %d calls", calls.Load())
	}
}

func TestCompleteEmptyMessages(t *testing.T) {
	c := NewClient("test-key", logger.NewNoop())
	if _, err := c.Complete(context.Background(), ports.ChatRequest{}); err == nil {
		t.Error("expected error for empty messages")
	}
}

func TestCompleteStream(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if !req.Stream {
			t.Error("streaming request should set stream")
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"<html>\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"hi\"}}]}\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"</html>\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	var deltas []string
	got, err := c.CompleteStream(context.Background(), ports.ChatRequest{
		Messages: []ports.ChatMessage{{Role: "user", Content: "hi"}},
	}, func(delta string) {
		deltas = append(deltas, delta)
	})
	if err != nil {
		t.Fatalf("CompleteStream failed: %v", err)
	}
	if got != "<html>hi</html>" {
		t.Errorf("unexpected accumulated content: %s", got)
	}
	if len(deltas) != 3 {
		t.Errorf("expected 3 deltas, got %d: %v", len(deltas), deltas)
	}
}

func TestCompleteStreamAPIError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid key"}}`)
	})

	_, err := c.CompleteStream(context.Background(), ports.ChatRequest{
		Messages: []ports.ChatMessage{{Role: "user", Content: "hi"}},
	}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid key") {
		t.Errorf("error should carry API message: %v", err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	c := NewClient("", logger.NewNoop())
	_, err := c.Complete(context.Background(), ports.ChatRequest{
		Messages: []ports.ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected missing key error, got %v", err)
	}
}
