package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOpenAIServer(t *testing.T, status int, body string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestOpenAICompleterReturnsFirstChoice(t *testing.T) {
	srv, received := newOpenAIServer(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gemini-2.0-flash",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "Hello"}, "finish_reason": "stop"}]
	}`)

	completer := NewOpenAICompleter("test-key", srv.URL+"/v1", "gemini-2.0-flash")
	got, err := completer.Complete(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("Complete err: %v", err)
	}
	if got.Text != "Hello" {
		t.Fatalf("unexpected text %q", got.Text)
	}

	if (*received)["model"] != "gemini-2.0-flash" {
		t.Fatalf("unexpected model %v", (*received)["model"])
	}
	messages, ok := (*received)["messages"].([]any)
	if !ok || len(messages) != 1 {
		t.Fatalf("expected one message, got %v", (*received)["messages"])
	}
}

func TestOpenAICompleterNoChoices(t *testing.T) {
	srv, _ := newOpenAIServer(t, http.StatusOK, `{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`)

	completer := NewOpenAICompleter("test-key", srv.URL+"/v1", "gemini-2.0-flash")
	if _, err := completer.Complete(context.Background(), "prompt"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestOpenAICompleterProviderError(t *testing.T) {
	srv, _ := newOpenAIServer(t, http.StatusTooManyRequests, `{"error": {"message": "quota", "type": "rate_limit"}}`)

	completer := NewOpenAICompleter("test-key", srv.URL+"/v1", "gemini-2.0-flash")
	if _, err := completer.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestOpenAICompleterMissingKey(t *testing.T) {
	completer := NewOpenAICompleter("", "http://unused.invalid", "gemini-2.0-flash")
	if _, err := completer.Complete(context.Background(), "prompt"); !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}
