package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"taste-persona/internal/config"
	apihttp "taste-persona/internal/http"
	"taste-persona/internal/llm"
	"taste-persona/internal/qloo"
	"taste-persona/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	qlooClient := qloo.NewClient(cfg.QlooAPIURL, cfg.QlooAPIKey, cfg.QlooTimeout, logger)

	tasteSvc := service.NewTasteService(qlooClient, logger)
	personaSvc := service.NewPersonaService(llmClient, logger)
	culturalSvc := service.NewCulturalMapService(llmClient, logger)
	analyzeSvc := service.NewAnalyzeService(tasteSvc, personaSvc, culturalSvc, logger)

	analyzeHandler := apihttp.NewAnalyzeHandler(logger, analyzeSvc)
	router := apihttp.NewRouter(logger, analyzeHandler, cfg.CORSAllowOrigins)

	// WriteTimeout cubre las dos llamadas al LLM mas las de Qloo.
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2*cfg.LLMTimeout + 2*cfg.QlooTimeout + 5*time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
