package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"taste-persona/internal/config"
	"taste-persona/internal/domain"
	"taste-persona/internal/llm"
	"taste-persona/internal/qloo"
	"taste-persona/internal/service"
)

func main() {
	movies := flag.String("movies", "", "favorite movies")
	music := flag.String("music", "", "favorite music")
	brands := flag.String("brands", "", "favorite brands")
	gender := flag.String("gender", "", "gender")
	language := flag.String("language", domain.DefaultLanguageCode, "response language code (en, tr, es, fr, de, hi, zh, it)")
	variation := flag.Int("variation", 0, "variation seed")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	qlooClient := qloo.NewClient(cfg.QlooAPIURL, cfg.QlooAPIKey, cfg.QlooTimeout, logger)
	analyzeSvc := service.NewAnalyzeService(
		service.NewTasteService(qlooClient, logger),
		service.NewPersonaService(llmClient, logger),
		service.NewCulturalMapService(llmClient, logger),
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := analyzeSvc.Analyze(ctx, domain.PreferenceInput{
		Movies:    *movies,
		Music:     *music,
		Brands:    *brands,
		Gender:    *gender,
		Language:  *language,
		Variation: *variation,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal(err)
	}
}
