package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taste-persona/internal/domain"
	"taste-persona/internal/llm"
	"taste-persona/internal/service"
)

type stubTasteGraph struct{}

func (stubTasteGraph) Resolve(_ context.Context, _ string, _ domain.Category) (string, bool) {
	return "", false
}

func (stubTasteGraph) Trending(_ context.Context, _ string, _ domain.Category) []string {
	return []string{}
}

func setupAnalyzeRouter(client *llm.MockClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	svc := service.NewAnalyzeService(
		service.NewTasteService(stubTasteGraph{}, logger),
		service.NewPersonaService(client, logger),
		service.NewCulturalMapService(client, logger),
		logger,
	)
	return NewRouter(logger, NewAnalyzeHandler(logger, svc), []string{"*"})
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]any {
	return map[string]any{
		"movies":   "Inception",
		"music":    "Daft Punk",
		"brands":   "Nike",
		"gender":   "male",
		"language": "fr",
	}
}

func TestAnalyzeHandlerSuccess(t *testing.T) {
	client := &llm.MockClient{Responses: []llm.MockResponse{
		{Content: `{"personaName":"Le Flaneur","culturalTwin":"Omar Sy"}`},
		{Content: `[{"country":"Japan","culturalInsight":"i","recommendation":"r"}]`},
	}}
	r := setupAnalyzeRouter(client)

	rec := performRequest(r, http.MethodPost, "/analyze", validBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp domain.AnalyzeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CulturalTwin != "Omar Sy" {
		t.Fatalf("unexpected twin %q", resp.CulturalTwin)
	}
	if !strings.Contains(resp.Result, `"personaName":"Le Flaneur"`) {
		t.Fatalf("unexpected result %s", resp.Result)
	}
	if resp.CountryInsights["Japan"].Country != "Japan" {
		t.Fatalf("unexpected insights %+v", resp.CountryInsights)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
	for _, prompt := range client.Prompts {
		if !strings.Contains(prompt, "respond ENTIRELY in French language") {
			t.Fatalf("expected French instruction in every prompt")
		}
	}
}

func TestAnalyzeHandlerVariationSetsTemperature(t *testing.T) {
	client := &llm.MockClient{Responses: []llm.MockResponse{
		{Content: `{"culturalTwin":"Bjork"}`},
		{Content: `[]`},
	}}
	r := setupAnalyzeRouter(client)

	body := validBody()
	body["variation"] = 100
	rec := performRequest(r, http.MethodPost, "/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if client.Options[0].Temperature != 2.0 {
		t.Fatalf("expected capped temperature 2.0, got %v", client.Options[0].Temperature)
	}
}

func TestAnalyzeHandlerMissingTwinAndEmptyInsights(t *testing.T) {
	client := &llm.MockClient{Responses: []llm.MockResponse{
		{Content: `{"personaName":"Sans Jumeau"}`},
		{Content: `definitely not json`},
	}}
	r := setupAnalyzeRouter(client)

	rec := performRequest(r, http.MethodPost, "/analyze", validBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["culturalTwin"] != "Unknown" {
		t.Fatalf("expected Unknown twin, got %v", resp["culturalTwin"])
	}
	insights, ok := resp["countryInsights"].(map[string]any)
	if !ok || len(insights) != 0 {
		t.Fatalf("expected empty countryInsights object, got %v", resp["countryInsights"])
	}
}

func TestAnalyzeHandlerEmptyPersona(t *testing.T) {
	client := &llm.MockClient{Err: llm.ErrEmptyResponse}
	r := setupAnalyzeRouter(client)

	rec := performRequest(r, http.MethodPost, "/analyze", validBody())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["detail"] != "Analysis failed: GPT returned empty response" {
		t.Fatalf("unexpected detail %q", resp["detail"])
	}
}

func TestAnalyzeHandlerMissingField(t *testing.T) {
	client := &llm.MockClient{Response: `{}`}
	r := setupAnalyzeRouter(client)

	body := validBody()
	delete(body, "gender")
	rec := performRequest(r, http.MethodPost, "/analyze", body)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.HasPrefix(resp["detail"], "Analysis failed:") || !strings.Contains(resp["detail"], "gender") {
		t.Fatalf("expected detail referencing gender, got %q", resp["detail"])
	}
	if client.Calls() != 0 {
		t.Fatalf("expected no llm calls, got %d", client.Calls())
	}
}

func TestAnalyzeHandlerMalformedBody(t *testing.T) {
	r := setupAnalyzeRouter(&llm.MockClient{})

	rec := performRequest(r, http.MethodPost, "/analyze", `{"movies":`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Analysis failed: invalid request body") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAnalyzeHandlerMalformedPersona(t *testing.T) {
	r := setupAnalyzeRouter(&llm.MockClient{Response: "I am not JSON"})

	rec := performRequest(r, http.MethodPost, "/analyze", validBody())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "parse persona") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAnalyzeHandlerLoosePersonaIsOK(t *testing.T) {
	client := &llm.MockClient{Responses: []llm.MockResponse{
		{Content: `{"traits":"curious, bold, calm","culturalDNAScore":{"Europe":"high"}}`},
		{Content: "[]"},
	}}
	r := setupAnalyzeRouter(client)

	rec := performRequest(r, http.MethodPost, "/analyze", validBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.AnalyzeResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CulturalTwin != domain.UnknownCulturalTwin {
		t.Fatalf("expected Unknown twin, got %q", resp.CulturalTwin)
	}
	if !strings.Contains(resp.Result, `"traits":"curious, bold, calm"`) {
		t.Fatalf("unexpected result %s", resp.Result)
	}
}

func TestRouterCORSAndHealth(t *testing.T) {
	r := setupAnalyzeRouter(&llm.MockClient{})

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	req.Header.Set("Origin", "https://frontend.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin, got %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	rec = performRequest(r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("expected propagated request id, got %q", rec.Header().Get(requestIDHeader))
	}
}
