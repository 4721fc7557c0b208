package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPClientGenerateSendsOptions(t *testing.T) {
	var got chatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", "sk-test", "gpt-4", time.Second, zap.NewNop())
	out, err := c.Generate(context.Background(), "hola", GenerateOptions{Temperature: 0.85, MaxTokens: 800})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected content %q", out)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("unexpected auth header %q", auth)
	}
	if got.Model != "gpt-4" || got.Temperature != 0.85 || got.MaxTokens != 800 {
		t.Fatalf("unexpected request body %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hola" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
}

func TestHTTPClientGenerateEmptyContent(t *testing.T) {
	bodies := []string{
		`{"choices":[]}`,
		`{"choices":[{"message":{"role":"assistant","content":null}}]}`,
		`{"choices":[{"message":{"role":"assistant","content":""}}]}`,
	}
	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))
		c := NewHTTPClient(srv.URL, "k", "m", time.Second, nil)
		_, err := c.Generate(context.Background(), "p", GenerateOptions{})
		srv.Close()
		if !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("body %s: expected ErrEmptyResponse, got %v", body, err)
		}
	}
}

func TestHTTPClientGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", "m", time.Second, zap.NewNop())
	_, err := c.Generate(context.Background(), "p", GenerateOptions{})
	if err == nil {
		t.Fatalf("expected error on 429")
	}
	if errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("status errors must not look like empty responses")
	}
}

func TestHTTPClientGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "k", "m", time.Second, zap.NewNop())
	if _, err := c.Generate(context.Background(), "p", GenerateOptions{}); err == nil {
		t.Fatalf("expected api error")
	}
}

func TestMockClientScriptedResponses(t *testing.T) {
	m := &MockClient{
		Response: "fallback",
		Responses: []MockResponse{
			{Content: "first"},
			{Err: ErrEmptyResponse},
		},
	}
	ctx := context.Background()
	if out, _ := m.Generate(ctx, "a", GenerateOptions{}); out != "first" {
		t.Fatalf("expected first, got %s", out)
	}
	if _, err := m.Generate(ctx, "b", GenerateOptions{}); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected scripted error, got %v", err)
	}
	if out, _ := m.Generate(ctx, "c", GenerateOptions{}); out != "fallback" {
		t.Fatalf("expected fallback, got %s", out)
	}
	if m.Calls() != 3 {
		t.Fatalf("expected 3 calls, got %d", m.Calls())
	}
}
