package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"taste-persona/internal/domain"
	"taste-persona/internal/llm"
)

// judgeResponse representa la respuesta estructurada del juez evaluador en formato JSON.
type judgeResponse struct {
	Reasoning      string `json:"reasoning"`
	LanguageScore  int    `json:"language_score"`
	CoherenceScore int    `json:"coherence_score"`
}

// heuristics son chequeos locales que se le pasan al juez y ademas penalizan.
type heuristics struct {
	TwinHasExtras  bool
	TooManyRegions bool
	MissingTwin    bool
}

func evaluatePersona(
	ctx context.Context,
	judge llm.LLMClient,
	sc Scenario,
	result domain.AnalyzeResult,
) (judgeResponse, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(result.Result), &doc); err != nil {
		return judgeResponse{}, fmt.Errorf("decode persona: %w", err)
	}

	h := checkHeuristics(doc, result.CulturalTwin)
	prompt := buildJudgePrompt(sc, domain.LanguageName(sc.Input.Language), result.Result, h)

	raw, err := judge.Generate(ctx, prompt, llm.GenerateOptions{Temperature: 0, MaxTokens: 400})
	if err != nil {
		return judgeResponse{}, err
	}

	// robustez: extraemos el primer JSON balanceado
	jsonStr := extractFirstJSONObject(raw)
	if jsonStr == "" {
		return judgeResponse{}, fmt.Errorf("juez devolvió no-json: %q", raw)
	}

	var jr judgeResponse
	if err := json.Unmarshal([]byte(jsonStr), &jr); err != nil {
		return judgeResponse{}, fmt.Errorf("error parseando JSON juez: %w (raw=%q)", err, raw)
	}

	jr.LanguageScore = clamp1to5(jr.LanguageScore)
	jr.CoherenceScore = clamp1to5(jr.CoherenceScore)

	// Penalización dura: el gemelo cultural debe ser solo un nombre.
	if (h.TwinHasExtras || h.MissingTwin) && jr.CoherenceScore > 2 {
		jr.CoherenceScore = 2
	}
	if h.TooManyRegions && jr.CoherenceScore > 3 {
		jr.CoherenceScore = 3
	}

	return jr, nil
}

// checkHeuristics trabaja sobre el documento crudo: la persona puede no encajar en el tipo.
func checkHeuristics(doc map[string]any, twin string) heuristics {
	regions, _ := doc["culturalDNAScore"].(map[string]any)
	return heuristics{
		TwinHasExtras:  strings.ContainsAny(twin, "()[],;:") || len(strings.Fields(twin)) > 5,
		TooManyRegions: len(regions) > 4,
		MissingTwin:    twin == domain.UnknownCulturalTwin,
	}
}

func clamp1to5(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

func buildJudgePrompt(sc Scenario, languageName, personaJSON string, h heuristics) string {
	return fmt.Sprintf(
		`You are an expert reviewer of generated cultural personas.

Target language: %s
User preferences: movies=%q, music=%q, brands=%q, gender=%q
Heuristic flags: twin_has_extras=%t, too_many_regions=%t, missing_twin=%t

Persona JSON:
%s

Score (1-5):
1) Language: are ALL human readable fields written in %s? culturalTwin is exempt (it is a person's name).
   - 5/5: every field in %s.
   - 3/5: one or two fields in another language.
   - 1/5: mostly another language.
2) Coherence: does the persona reflect the stated preferences?
   - If twin_has_extras=true or missing_twin=true => coherence at most 2/5.
   - If too_many_regions=true => coherence at most 3/5.

Respond ONLY with JSON (no markdown):
{
  "reasoning": "...",
  "language_score": 0,
  "coherence_score": 0
}`,
		languageName,
		sc.Input.Movies, sc.Input.Music, sc.Input.Brands, sc.Input.Gender,
		h.TwinHasExtras, h.TooManyRegions, h.MissingTwin,
		personaJSON,
		languageName,
		languageName,
	)
}

// extractFirstJSONObject devuelve el primer objeto {...} balanceado.
func extractFirstJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
