package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"taste-persona/internal/domain"
	"taste-persona/internal/llm"
	"taste-persona/internal/metrics"
)

const (
	countryInsightsTemperature = 0.7
	countryInsightsMaxTokens   = 800
)

// CulturalMapService genera comentarios culturales por pais.
// Nunca falla: cualquier problema con el LLM degrada a un mapa vacio.
type CulturalMapService struct {
	llmClient llm.LLMClient
	logger    *zap.Logger
}

func NewCulturalMapService(llmClient llm.LLMClient, logger *zap.Logger) *CulturalMapService {
	return &CulturalMapService{
		llmClient: llmClient,
		logger:    logger,
	}
}

// CountryInsights devuelve los insights indexados por nombre de pais.
func (s *CulturalMapService) CountryInsights(ctx context.Context, countries []string, language string) map[string]domain.CountryInsight {
	insights := map[string]domain.CountryInsight{}
	if len(countries) == 0 {
		return insights
	}

	prompt := buildCountryInsightsPrompt(countries, domain.LanguageName(language))
	raw, err := s.llmClient.Generate(ctx, prompt, llm.GenerateOptions{
		Temperature: countryInsightsTemperature,
		MaxTokens:   countryInsightsMaxTokens,
	})
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) {
		metrics.UpstreamRequests.WithLabelValues("llm", "country_insights", metrics.OutcomeError).Inc()
		s.logger.Error("cultural map generate failed", zap.Error(err))
		return insights
	}
	if strings.TrimSpace(raw) == "" {
		metrics.UpstreamRequests.WithLabelValues("llm", "country_insights", metrics.OutcomeEmpty).Inc()
		s.logger.Warn("llm returned empty cultural map content")
		return insights
	}

	candidate := cleanLLMJSONResponse(raw)
	if arr := extractFirstJSONArray(candidate); arr != "" {
		candidate = arr
	}

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &items); err != nil {
		metrics.UpstreamRequests.WithLabelValues("llm", "country_insights", metrics.OutcomeFallback).Inc()
		s.logger.Error("failed to parse cultural map response", zap.Error(err))
		return insights
	}

	for _, item := range items {
		var parsed struct {
			Country         *string `json:"country"`
			CulturalInsight string  `json:"culturalInsight"`
			Recommendation  string  `json:"recommendation"`
		}
		if err := json.Unmarshal(item, &parsed); err != nil {
			s.logger.Warn("skipping malformed cultural map item", zap.Error(err))
			continue
		}
		if parsed.Country == nil || strings.TrimSpace(*parsed.Country) == "" {
			continue
		}
		insights[*parsed.Country] = domain.CountryInsight{
			Country:         *parsed.Country,
			CulturalInsight: parsed.CulturalInsight,
			Recommendation:  parsed.Recommendation,
		}
	}

	metrics.UpstreamRequests.WithLabelValues("llm", "country_insights", metrics.OutcomeOK).Inc()
	return insights
}
