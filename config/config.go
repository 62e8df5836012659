package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost     string
	ServerPort     string
	LogLevel       string
	AllowedOrigins []string

	// Vector store configuration
	VectorBackend       string
	DatabaseURL         string
	SQLitePath          string
	Embedder            string
	EmbeddingDimensions int

	// Redis backs the shared catalog cache and the rate limiter
	RedisURL string

	OpenAI      OpenAIConfig
	WooCommerce WooCommerceConfig

	// Catalog cache configuration
	CatalogCacheTTL     time.Duration
	CatalogCacheBackend string

	// Retrieval configuration
	RecipesPerQuery int
	MinSimilarity   float64
	SpiceMode       string

	AdminJWTSecret string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Image archive configuration; archiving is off without a bucket
	S3Bucket       string
	AWSRegion      string
	MaxUploadBytes int64
}

// OpenAIConfig configures generation, embeddings, transcription and vision
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	VisionModel    string
	MaxTokens      int
	Temperature    float64
}

// WooCommerceConfig configures the spice store REST client
type WooCommerceConfig struct {
	StoreURL       string
	ConsumerKey    string
	ConsumerSecret string
	PerPage        int
	Timeout        time.Duration
}

const (
	BackendPgvector = "pgvector"
	BackendSQLite   = "sqlite"

	EmbedderOpenAI = "openai"
	EmbedderHash   = "hash"

	CacheMemory = "memory"
	CacheRedis  = "redis"

	// PgvectorDimensions is the width of the recipes.embedding column.
	PgvectorDimensions = 1536
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("allowed_origins", "http://localhost:3000")
	v.SetDefault("vector_backend", BackendSQLite)
	v.SetDefault("sqlite_path", "data/recipes.db")
	v.SetDefault("embedder", EmbedderOpenAI)
	v.SetDefault("embedding_dimensions", 1536)
	v.SetDefault("openai_chat_model", "gpt-4-turbo")
	v.SetDefault("openai_embedding_model", "text-embedding-3-small")
	v.SetDefault("openai_vision_model", "gpt-4-turbo")
	v.SetDefault("openai_max_tokens", 1000)
	v.SetDefault("openai_temperature", 0.7)
	v.SetDefault("woocommerce_per_page", 100)
	v.SetDefault("woocommerce_timeout", "15s")
	v.SetDefault("catalog_cache_ttl", "1h")
	v.SetDefault("catalog_cache_backend", CacheMemory)
	v.SetDefault("recipes_per_query", 3)
	v.SetDefault("min_similarity", 0.0)
	v.SetDefault("spice_mode", "per_ingredient")
	v.SetDefault("rate_limit_requests", 30)
	v.SetDefault("rate_limit_window", "1m")
	v.SetDefault("aws_region", "eu-central-1")
	v.SetDefault("max_upload_bytes", 20<<20)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env != Production {
		// A missing .env file is normal outside local development.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Environment:         env,
		ServerHost:          v.GetString("server_host"),
		ServerPort:          v.GetString("server_port"),
		LogLevel:            v.GetString("log_level"),
		AllowedOrigins:      splitList(v.GetString("allowed_origins")),
		VectorBackend:       strings.ToLower(v.GetString("vector_backend")),
		DatabaseURL:         secret(v, "database_url"),
		SQLitePath:          v.GetString("sqlite_path"),
		Embedder:            strings.ToLower(v.GetString("embedder")),
		EmbeddingDimensions: v.GetInt("embedding_dimensions"),
		RedisURL:            secret(v, "redis_url"),
		OpenAI: OpenAIConfig{
			APIKey:         secret(v, "openai_api_key"),
			BaseURL:        v.GetString("openai_base_url"),
			ChatModel:      v.GetString("openai_chat_model"),
			EmbeddingModel: v.GetString("openai_embedding_model"),
			VisionModel:    v.GetString("openai_vision_model"),
			MaxTokens:      v.GetInt("openai_max_tokens"),
			Temperature:    v.GetFloat64("openai_temperature"),
		},
		WooCommerce: WooCommerceConfig{
			StoreURL:       v.GetString("woocommerce_store_url"),
			ConsumerKey:    secret(v, "woocommerce_consumer_key"),
			ConsumerSecret: secret(v, "woocommerce_consumer_secret"),
			PerPage:        v.GetInt("woocommerce_per_page"),
			Timeout:        v.GetDuration("woocommerce_timeout"),
		},
		CatalogCacheTTL:     v.GetDuration("catalog_cache_ttl"),
		CatalogCacheBackend: strings.ToLower(v.GetString("catalog_cache_backend")),
		RecipesPerQuery:     v.GetInt("recipes_per_query"),
		MinSimilarity:       v.GetFloat64("min_similarity"),
		SpiceMode:           v.GetString("spice_mode"),
		AdminJWTSecret:      secret(v, "admin_jwt_secret"),
		RateLimitRequests:   v.GetInt("rate_limit_requests"),
		RateLimitWindow:     v.GetDuration("rate_limit_window"),
		S3Bucket:            v.GetString("s3_bucket_name"),
		AWSRegion:           v.GetString("aws_region"),
		MaxUploadBytes:      v.GetInt64("max_upload_bytes"),
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// secret returns the environment value of key, falling back to the Docker
// secret file of the same name.
func secret(v *viper.Viper, key string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return readSecret(key)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
