package openaicompat_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Okyu59/astro-seek/internal/adapters/llm/openaicompat"
	"github.com/Okyu59/astro-seek/internal/domain"
	"github.com/Okyu59/astro-seek/internal/ports"
)

func testPrompt() ports.Prompt {
	return ports.Prompt{
		System: "You are an astrologer.",
		User:   "Natal chart:\n- Venus in Libra, house 12\n\nQuestion: love?",
	}
}

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 0,
		"model":   "test-model",
		"choices": []map[string]any{
			{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": content}},
		},
	}
}

func TestClient_Generate_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponse("  Venus in Libra loves harmony.  "))
	}))
	defer srv.Close()

	client := openaicompat.NewClient(srv.Client(), "test-key", srv.URL, "test-model", slog.Default())

	text, err := client.Generate(context.Background(), testPrompt())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Venus in Libra loves harmony." {
		t.Errorf("unexpected text: %q", text)
	}
	if gotReq["model"] != "test-model" {
		t.Errorf("request model: %v", gotReq["model"])
	}
	msgs, _ := gotReq["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %v", gotReq["messages"])
	}
}

func TestClient_Generate_SingleAttemptOnFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	client := openaicompat.NewClient(srv.Client(), "key", srv.URL, "primary", slog.Default())

	_, err := client.Generate(context.Background(), testPrompt())
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 upstream call, got %d", calls.Load())
	}
}

func TestClient_Generate_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	client := openaicompat.NewClient(srv.Client(), "key", srv.URL, "primary", slog.Default())

	_, err := client.Generate(context.Background(), testPrompt())
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected exactly 1 upstream call, got %d", calls.Load())
	}
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	client := openaicompat.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Generate(context.Background(), testPrompt())
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
}

func TestClient_Generate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	client := openaicompat.NewClient(srv.Client(), "key", srv.URL, "model", slog.Default())

	_, err := client.Generate(context.Background(), testPrompt())
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
}
