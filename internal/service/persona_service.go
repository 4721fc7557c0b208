package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"taste-persona/internal/domain"
	"taste-persona/internal/llm"
	"taste-persona/internal/metrics"
)

// ErrEmptyPersona se devuelve cuando el LLM no genero contenido para la persona.
var ErrEmptyPersona = errors.New("GPT returned empty response")

const (
	personaBaseTemperature = 0.8
	personaTemperatureStep = 0.05
	maxTemperature         = 2.0
	personaMaxTokens       = 800
)

// PersonaTemperature escala la temperatura con la semilla de variacion,
// con tope en el maximo del proveedor.
func PersonaTemperature(seed int) float64 {
	t := personaBaseTemperature + float64(seed)*personaTemperatureStep
	return math.Max(0, math.Min(t, maxTemperature))
}

// PersonaService genera y parsea la persona a partir de los gustos del usuario.
type PersonaService struct {
	llmClient llm.LLMClient
	logger    *zap.Logger
}

func NewPersonaService(llmClient llm.LLMClient, logger *zap.Logger) *PersonaService {
	return &PersonaService{
		llmClient: llmClient,
		logger:    logger,
	}
}

// Synthesize llama al LLM y devuelve el texto crudo (se espera JSON).
func (s *PersonaService) Synthesize(ctx context.Context, in domain.PreferenceInput, suggestions []string) (string, error) {
	languageName := domain.LanguageName(in.Language)
	prompt := buildPersonaPrompt(in.Movies, in.Music, in.Brands, in.Gender, suggestions, languageName, in.Variation)
	opts := llm.GenerateOptions{
		Temperature: PersonaTemperature(in.Variation),
		MaxTokens:   personaMaxTokens,
	}

	raw, err := s.llmClient.Generate(ctx, prompt, opts)
	if err != nil && !errors.Is(err, llm.ErrEmptyResponse) {
		metrics.UpstreamRequests.WithLabelValues("llm", "persona", metrics.OutcomeError).Inc()
		return "", fmt.Errorf("llm generate: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		metrics.UpstreamRequests.WithLabelValues("llm", "persona", metrics.OutcomeEmpty).Inc()
		return "", ErrEmptyPersona
	}

	metrics.UpstreamRequests.WithLabelValues("llm", "persona", metrics.OutcomeOK).Inc()
	s.logger.Debug("persona llm response",
		zap.String("language", languageName),
		zap.Float64("temperature", opts.Temperature),
		zap.String("content", raw),
	)
	return raw, nil
}

// ParsedPersona conserva el documento tal como lo devolvio el modelo y,
// cuando encaja, su version tipada. Document es la fuente de verdad.
type ParsedPersona struct {
	Document map[string]any
	Persona  domain.Persona
	Typed    bool
}

// CulturalTwin devuelve culturalTwin del documento o "Unknown".
func (p ParsedPersona) CulturalTwin() string {
	return domain.CulturalTwinFromDocument(p.Document)
}

// ParsePersona limpia fences, aisla el objeto JSON y lo decodifica.
// Solo el JSON invalido es error; desvios de schema o de tipos se registran.
func (s *PersonaService) ParsePersona(raw string) (ParsedPersona, error) {
	candidate := cleanLLMJSONResponse(raw)
	if obj := extractFirstJSONObject(candidate); obj != "" {
		candidate = obj
	}

	doc, err := decodeDocument(candidate)
	if err != nil {
		return ParsedPersona{}, fmt.Errorf("parse persona: %w", err)
	}

	violations, err := validatePersonaDocument(doc)
	if err != nil {
		s.logger.Warn("persona schema check failed", zap.Error(err))
	}

	parsed := ParsedPersona{Document: doc}
	if err := json.Unmarshal([]byte(candidate), &parsed.Persona); err != nil {
		parsed.Persona = domain.Persona{}
		violations = append(violations, "typed decode: "+err.Error())
	} else {
		parsed.Typed = true
	}

	if len(violations) > 0 {
		metrics.PersonaSchemaViolations.Inc()
		s.logger.Warn("persona does not match schema", zap.Strings("violations", violations))
	}
	return parsed, nil
}

// decodeDocument exige un objeto JSON y conserva los numeros tal cual.
func decodeDocument(candidate string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("unexpected data after JSON object")
	}
	if doc == nil {
		return nil, errors.New("expected a JSON object")
	}
	return doc, nil
}
