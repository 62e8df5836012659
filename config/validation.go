package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a configuration
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "\n")
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequireOpenAI      bool
	RequireStore       bool
	RequireAdminSecret bool
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {RequireOpenAI: true},
		Test:        {},
		CI:          {},
		Production: {
			RequireOpenAI:      true,
			RequireStore:       true,
			RequireAdminSecret: true,
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	reqs := requirements[cfg.Environment]
	var errs ValidationErrors
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	switch cfg.VectorBackend {
	case BackendPgvector:
		if cfg.DatabaseURL == "" {
			add("DATABASE_URL", "required when VECTOR_BACKEND is pgvector")
		}
		// The recipes.embedding column is vector(1536).
		if cfg.EmbeddingDimensions != PgvectorDimensions {
			add("EMBEDDING_DIMENSIONS", fmt.Sprintf("must be %d with the pgvector backend", PgvectorDimensions))
		}
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "required when VECTOR_BACKEND is sqlite")
		}
	default:
		add("VECTOR_BACKEND", fmt.Sprintf("unknown backend %q", cfg.VectorBackend))
	}

	switch cfg.Embedder {
	case EmbedderOpenAI, EmbedderHash:
	default:
		add("EMBEDDER", fmt.Sprintf("unknown embedder %q", cfg.Embedder))
	}
	if cfg.EmbeddingDimensions <= 0 {
		add("EMBEDDING_DIMENSIONS", "must be positive")
	}

	switch cfg.CatalogCacheBackend {
	case CacheMemory:
	case CacheRedis:
		if cfg.RedisURL == "" {
			add("REDIS_URL", "required when CATALOG_CACHE_BACKEND is redis")
		}
	default:
		add("CATALOG_CACHE_BACKEND", fmt.Sprintf("unknown backend %q", cfg.CatalogCacheBackend))
	}

	switch cfg.SpiceMode {
	case "per_ingredient", "recipe_blend":
	default:
		add("SPICE_MODE", fmt.Sprintf("unknown mode %q", cfg.SpiceMode))
	}

	if cfg.CatalogCacheTTL <= 0 {
		add("CATALOG_CACHE_TTL", "must be positive")
	}
	if cfg.RecipesPerQuery < 1 {
		add("RECIPES_PER_QUERY", "must be at least 1")
	}
	if cfg.MinSimilarity < 0 || cfg.MinSimilarity > 1 {
		add("MIN_SIMILARITY", "must be between 0 and 1")
	}

	if reqs.RequireOpenAI && cfg.OpenAI.APIKey == "" {
		add("OPENAI_API_KEY", "required secret openai_api_key is not set")
	}
	if reqs.RequireStore && cfg.WooCommerce.StoreURL == "" {
		add("WOOCOMMERCE_STORE_URL", "required environment variable is not set")
	}
	if reqs.RequireAdminSecret && cfg.AdminJWTSecret == "" {
		add("ADMIN_JWT_SECRET", "required secret admin_jwt_secret is not set")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
