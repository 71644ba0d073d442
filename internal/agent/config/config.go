// Package config loads process configuration once at startup. Nothing here
// is re-read per request.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	Providers ProviderConfig
	Search    SearchConfig
	Corpus    CorpusConfig
	Document  DocumentConfig
}

type ProviderConfig struct {
	GeminiAPIKey     string
	GeminiModel      string
	DeepSeekAPIKey   string
	OpenRouterAPIKey string
	OpenRouterModel  string
}

type SearchConfig struct {
	GoogleAPIKey string
	GoogleCX     string
	CacheSize    int
}

type CorpusConfig struct {
	DSN string
}

type DocumentConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port: *port,
		Env:  env,
		Providers: ProviderConfig{
			GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			GeminiModel:      firstNonEmpty(os.Getenv("GEMINI_MODEL"), "gemini-2.5-flash"),
			DeepSeekAPIKey:   strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY")),
			OpenRouterAPIKey: strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")),
			OpenRouterModel:  strings.TrimSpace(os.Getenv("OPENROUTER_MODEL")),
		},
		Search: SearchConfig{
			GoogleAPIKey: strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
			GoogleCX:     strings.TrimSpace(os.Getenv("GOOGLE_CX")),
			CacheSize:    envInt("SEARCH_CACHE_SIZE", 256),
		},
		Corpus: CorpusConfig{
			DSN: strings.TrimSpace(os.Getenv("CORPUS_PG_DSN")),
		},
		Document: loadDocumentConfig(),
	}, nil
}

func loadDocumentConfig() DocumentConfig {
	endpoint := strings.TrimSpace(os.Getenv("DOC_S3_ENDPOINT"))
	return DocumentConfig{
		Enabled:   endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(os.Getenv("DOC_S3_REGION"), "us-east-1"),
		AccessKey: firstNonEmpty(os.Getenv("DOC_S3_ACCESS_KEY"), os.Getenv("MINIO_ROOT_USER")),
		SecretKey: firstNonEmpty(os.Getenv("DOC_S3_SECRET_KEY"), os.Getenv("MINIO_ROOT_PASSWORD")),
		Bucket:    firstNonEmpty(os.Getenv("DOC_S3_BUCKET"), "agripulse-documents"),
		UseSSL:    envBool("DOC_S3_USE_SSL", false),
	}
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
