package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"taste-persona/internal/llm"
)

func TestCountryInsightsEmptyCountriesSkipsLLM(t *testing.T) {
	client := &llm.MockClient{Response: "[]"}
	svc := NewCulturalMapService(client, zap.NewNop())

	got := svc.CountryInsights(context.Background(), nil, "en")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty map, got %v", got)
	}
	if client.Calls() != 0 {
		t.Fatalf("expected no llm call, got %d", client.Calls())
	}
}

func TestCountryInsightsKeysByCountry(t *testing.T) {
	client := &llm.MockClient{Response: "```json\n" + `[
		{"country": "USA", "culturalInsight": "i1", "recommendation": "r1"},
		{"culturalInsight": "orphan", "recommendation": "r"},
		"not an object",
		{"country": "Japan", "culturalInsight": "i2", "recommendation": "r2"}
	]` + "\n```"}
	svc := NewCulturalMapService(client, zap.NewNop())

	got := svc.CountryInsights(context.Background(), []string{"USA", "Japan"}, "de")
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %v", got)
	}
	if got["USA"].CulturalInsight != "i1" || got["Japan"].Recommendation != "r2" {
		t.Fatalf("unexpected insights %+v", got)
	}

	prompt := client.Prompts[0]
	if !strings.Contains(prompt, "respond ENTIRELY in German language") {
		t.Fatalf("expected German instruction in prompt")
	}
	if !strings.Contains(prompt, "Countries: USA, Japan") {
		t.Fatalf("expected countries in prompt")
	}
	if client.Options[0].Temperature != 0.7 || client.Options[0].MaxTokens != 800 {
		t.Fatalf("unexpected options %+v", client.Options[0])
	}
}

func TestCountryInsightsDegradesToEmpty(t *testing.T) {
	cases := []struct {
		name   string
		client *llm.MockClient
	}{
		{"empty content", &llm.MockClient{Response: ""}},
		{"empty sentinel", &llm.MockClient{Err: llm.ErrEmptyResponse}},
		{"unparsable", &llm.MockClient{Response: "Sorry, I can't do that."}},
		{"object instead of list", &llm.MockClient{Response: `{"country": "UK"}`}},
		{"provider error", &llm.MockClient{Err: errors.New("llm http error: status=500")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewCulturalMapService(tc.client, zap.NewNop())
			got := svc.CountryInsights(context.Background(), []string{"UK"}, "en")
			if got == nil || len(got) != 0 {
				t.Fatalf("expected empty map, got %v", got)
			}
		})
	}
}
