package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ListenAddr       string        `env:"LISTEN_ADDR"        envDefault:":8080"`
	DBPath           string        `env:"DB_PATH"            envDefault:"db.sqlite"`
	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT"      envDefault:"10s"`
	MaxContentChars  int           `env:"MAX_CONTENT_CHARS"  envDefault:"24000"`
	CacheTTL         time.Duration `env:"CACHE_TTL"          envDefault:"5m"`
	CacheMaxEntries  int           `env:"CACHE_MAX_ENTRIES"  envDefault:"256"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string        `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL    string        `env:"OLLAMA_BASE_URL"    envDefault:"http://localhost:11434/v1"`
	HistoryRetention time.Duration `env:"HISTORY_RETENTION"  envDefault:"720h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
