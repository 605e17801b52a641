package config

import (
	"os"
	"strconv"
)

type Config struct {
	APIPort  string
	LogLevel string

	PostgresDSN string

	NATSURL     string
	NATSSubject string

	OllamaURL        string
	OllamaGenModel   string
	OllamaEmbedModel string

	DecisionEngine         string
	DecisionTimeoutSeconds int
	ResponseTimeoutSeconds int

	CorpusPath       string
	EmbeddingBackend string
	EmbeddingDim     int
	RetrievalTopK    int

	MaxQuestionChars int
	MaxContextChars  int
}

// Load reads configuration from the environment. Empty POSTGRES_DSN,
// NATS_URL, and OLLAMA_URL disable those integrations rather than
// failing startup; the service degrades to its deterministic core.
func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		PostgresDSN: mustEnv("POSTGRES_DSN", ""),

		NATSURL:     mustEnv("NATS_URL", ""),
		NATSSubject: mustEnv("NATS_SUBJECT", "geoqa.index.refresh"),

		OllamaURL:        mustEnv("OLLAMA_URL", ""),
		OllamaGenModel:   mustEnv("OLLAMA_GEN_MODEL", "llama3.1:8b"),
		OllamaEmbedModel: mustEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),

		DecisionEngine:         mustEnv("DECISION_ENGINE", "rules"),
		DecisionTimeoutSeconds: mustEnvInt("DECISION_TIMEOUT_SECONDS", 10),
		ResponseTimeoutSeconds: mustEnvInt("RESPONSE_TIMEOUT_SECONDS", 20),

		CorpusPath:       mustEnv("CORPUS_PATH", ""),
		EmbeddingBackend: mustEnv("EMBEDDING_BACKEND", "hashed"),
		EmbeddingDim:     mustEnvInt("EMBEDDING_DIM", 512),
		RetrievalTopK:    mustEnvInt("RETRIEVAL_TOP_K", 3),

		MaxQuestionChars: mustEnvInt("MAX_QUESTION_CHARS", 2000),
		MaxContextChars:  mustEnvInt("MAX_CONTEXT_CHARS", 5000),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
