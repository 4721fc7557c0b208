package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnknownCulturalTwin se devuelve cuando el LLM no eligio un gemelo cultural.
const UnknownCulturalTwin = "Unknown"

// DefaultCountries son los paises del mapa cultural.
var DefaultCountries = []string{"USA", "South Korea", "UK", "Japan"}

// Persona es el perfil generado por el LLM. Todos los campos son opcionales:
// el modelo no garantiza la forma pedida.
type Persona struct {
	PersonaName       string             `json:"personaName,omitempty"`
	Description       string             `json:"description,omitempty"`
	Traits            []string           `json:"traits,omitempty"`
	Insights          *PersonaInsights   `json:"insights,omitempty"`
	CulturalTwin      *string            `json:"culturalTwin,omitempty"`
	TherapySuggestion *TherapySuggestion `json:"therapySuggestion,omitempty"`
	CulturalDNAScore  map[string]Percent `json:"culturalDNAScore,omitempty"`
	Archetype         *Archetype         `json:"archetype,omitempty"`
}

type PersonaInsights struct {
	LikelyInterests string `json:"likelyInterests,omitempty"`
	LikelyBehaviors string `json:"likelyBehaviors,omitempty"`
}

type TherapySuggestion struct {
	Summary        string   `json:"summary,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Resources      []string `json:"resources,omitempty"`
	DailyTip       string   `json:"dailyTip,omitempty"`
}

type Archetype struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// CulturalTwinFromDocument lee culturalTwin del JSON crudo del modelo.
// Solo un texto no vacio cuenta; cualquier otra cosa es "Unknown".
func CulturalTwinFromDocument(doc map[string]any) string {
	if twin, ok := doc["culturalTwin"].(string); ok && strings.TrimSpace(twin) != "" {
		return twin
	}
	return UnknownCulturalTwin
}

// Percent acepta tanto 45 como "45%" en el JSON del modelo.
type Percent float64

func (p *Percent) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*p = Percent(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("percent: unsupported value %s", string(data))
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("percent: %w", err)
	}
	*p = Percent(n)
	return nil
}

// CountryInsight es el comentario cultural de un pais.
type CountryInsight struct {
	Country         string `json:"country"`
	CulturalInsight string `json:"culturalInsight"`
	Recommendation  string `json:"recommendation"`
}

// AnalyzeResult es el payload que devuelve POST /analyze.
type AnalyzeResult struct {
	Result          string                    `json:"result"`
	CulturalTwin    string                    `json:"culturalTwin"`
	CountryInsights map[string]CountryInsight `json:"countryInsights"`
}
