package config

import (
	"log"
	"os"
	"strconv"
)

// DefaultHuggingFaceModel is the chat model used for query analysis and
// listwise reranking when HUGGINGFACE_MODEL is not set.
const DefaultHuggingFaceModel = "meta-llama/Llama-3.2-3B-Instruct"

type Config struct {
	Port              string
	CorsOrigin        string
	RawgAPIKey        string
	HuggingFaceToken  string
	HuggingFaceModel  string
	RerankingStrategy string
	DefaultPageSize   int
}

// Load reads configuration from the environment. The RAWG key is the one hard
// requirement: without it the catalog client cannot resolve anything, so we
// refuse to start.
func Load() *Config {
	rawgKey := os.Getenv("RAWG_API_KEY")
	if rawgKey == "" {
		log.Fatal("❌ RAWG_API_KEY environment variable not set")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		CorsOrigin:        getEnv("CORS_ORIGIN", "http://localhost:5173"),
		RawgAPIKey:        rawgKey,
		HuggingFaceToken:  os.Getenv("HUGGINGFACE_API_TOKEN"),
		HuggingFaceModel:  getEnv("HUGGINGFACE_MODEL", DefaultHuggingFaceModel),
		RerankingStrategy: getEnv("RERANKING_STRATEGY", "llm"),
		DefaultPageSize:   getEnvInt("DEFAULT_PAGE_SIZE", 20),
	}

	if cfg.HuggingFaceToken == "" {
		log.Println("⚠️ HUGGINGFACE_API_TOKEN not set, LLM-backed requests will fail")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("⚠️ %s is not a positive integer, using default %d", key, fallback)
	}
	return fallback
}
