package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"taste-persona/internal/domain"
	"taste-persona/internal/metrics"
)

// AnalyzeService orquesta el pipeline completo de /analyze.
type AnalyzeService struct {
	taste     *TasteService
	persona   *PersonaService
	cultural  *CulturalMapService
	countries []string
	logger    *zap.Logger
}

func NewAnalyzeService(
	taste *TasteService,
	persona *PersonaService,
	cultural *CulturalMapService,
	logger *zap.Logger,
) *AnalyzeService {
	return &AnalyzeService{
		taste:     taste,
		persona:   persona,
		cultural:  cultural,
		countries: domain.DefaultCountries,
		logger:    logger,
	}
}

// Analyze devuelve error solo si falla la persona; gustos y mapa cultural degradan.
func (s *AnalyzeService) Analyze(ctx context.Context, in domain.PreferenceInput) (domain.AnalyzeResult, error) {
	start := time.Now()
	defer func() {
		metrics.AnalyzeDuration.Observe(time.Since(start).Seconds())
	}()

	if strings.TrimSpace(in.Language) == "" {
		in.Language = domain.DefaultLanguageCode
	}

	signals := s.taste.CollectSignals(ctx, in)

	raw, err := s.persona.Synthesize(ctx, in, signals.Combined())
	if err != nil {
		return domain.AnalyzeResult{}, err
	}

	parsed, err := s.persona.ParsePersona(raw)
	if err != nil {
		return domain.AnalyzeResult{}, err
	}

	encoded, err := json.Marshal(parsed.Document)
	if err != nil {
		return domain.AnalyzeResult{}, fmt.Errorf("encode persona: %w", err)
	}

	insights := s.cultural.CountryInsights(ctx, s.countries, in.Language)

	s.logger.Info("persona analyzed",
		zap.String("language", in.Language),
		zap.Int("variation", in.Variation),
		zap.Int("suggestions", len(signals.Combined())),
		zap.Int("country_insights", len(insights)),
		zap.Bool("typed_persona", parsed.Typed),
	)

	return domain.AnalyzeResult{
		Result:          string(encoded),
		CulturalTwin:    parsed.CulturalTwin(),
		CountryInsights: insights,
	}, nil
}
