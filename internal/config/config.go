package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort         string        `env:"HTTP_PORT" envDefault:"8080"`
	LLMAPIKey        string        `env:"OPENAI_API_KEY,required"`
	LLMBaseURL       string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel         string        `env:"LLM_MODEL" envDefault:"gpt-4"`
	LLMTimeout       time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	QlooAPIURL       string        `env:"QLOO_API_URL,required"`
	QlooAPIKey       string        `env:"QLOO_API_KEY,required"`
	QlooTimeout      time.Duration `env:"QLOO_TIMEOUT" envDefault:"10s"`
	CORSAllowOrigins []string      `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
