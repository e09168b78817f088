package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "db.sqlite", cfg.DBPath)
	require.Equal(t, 10*time.Second, cfg.FetchTimeout)
	require.Equal(t, 24000, cfg.MaxContentChars)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, 256, cfg.CacheMaxEntries)
	require.Equal(t, "http://localhost:11434/v1", cfg.OllamaBaseURL)
	require.Equal(t, 720*time.Hour, cfg.HistoryRetention)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("MAX_CONTENT_CHARS", "100")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama:11434/v1")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, 3*time.Second, cfg.FetchTimeout)
	require.Equal(t, 100, cfg.MaxContentChars)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	require.Equal(t, "http://ollama:11434/v1", cfg.OllamaBaseURL)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}
