package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"taste-persona/internal/config"
	"taste-persona/internal/domain"
	"taste-persona/internal/llm"
	"taste-persona/internal/qloo"
	"taste-persona/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

// Scenario es un input de prueba para el juez.
type Scenario struct {
	Name  string
	Input domain.PreferenceInput
}

func defaultScenarios() []Scenario {
	base := domain.PreferenceInput{
		Movies: "Inception",
		Music:  "Daft Punk",
		Brands: "Nike",
		Gender: "male",
	}
	var out []Scenario
	for _, code := range []string{"en", "fr", "tr", "es", "de", "hi", "zh", "it"} {
		in := base
		in.Language = code
		out = append(out, Scenario{Name: "idioma " + code, Input: in})
	}
	return out
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewNop()
	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	qlooClient := qloo.NewClient(cfg.QlooAPIURL, cfg.QlooAPIKey, cfg.QlooTimeout, logger)
	analyzeSvc := service.NewAnalyzeService(
		service.NewTasteService(qlooClient, logger),
		service.NewPersonaService(llmClient, logger),
		service.NewCulturalMapService(llmClient, logger),
		logger,
	)

	scenarios := defaultScenarios()
	var totalLang, totalCoh int
	for _, sc := range scenarios {
		fmt.Printf("%s[%s]%s\n", colorCyan, sc.Name, colorReset)

		runCtx, cancel := context.WithTimeout(ctx, 3*time.Minute)
		result, err := analyzeSvc.Analyze(runCtx, sc.Input)
		cancel()
		if err != nil {
			log.Fatalf("analyze failed: %v", err)
		}
		fmt.Printf("%s[twin]%s %s\n", colorGreen, colorReset, result.CulturalTwin)

		jr, err := evaluatePersona(ctx, llmClient, sc, result)
		if err != nil {
			log.Fatalf("judge failed: %v", err)
		}

		fmt.Printf("%sJuez%s %q\n", colorCyan, colorReset, jr.Reasoning)
		fmt.Printf("Scores: Idioma %d/5 | Coherencia %d/5\n\n", jr.LanguageScore, jr.CoherenceScore)

		totalLang += jr.LanguageScore
		totalCoh += jr.CoherenceScore
	}

	n := len(scenarios)
	fmt.Println("==== Promedios ====")
	fmt.Printf("Idioma: %.2f/5 | Coherencia: %.2f/5\n",
		float64(totalLang)/float64(n), float64(totalCoh)/float64(n))
}
