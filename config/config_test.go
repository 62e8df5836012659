package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestGetEnvironment(t *testing.T) {
	testEnv(t)

	tests := []struct {
		env  string
		want Environment
	}{
		{"production", Production},
		{"PROD", Production},
		{" test ", Test},
		{"dev", Development},
		{"staging", Development},
		{"", Development},
	}
	for _, tt := range tests {
		t.Setenv("ENV", tt.env)
		assert.Equal(t, tt.want, GetEnvironment(), tt.env)
	}

	t.Setenv("ENV", "production")
	t.Setenv("GITHUB_ACTIONS", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfigDefaults(t *testing.T) {
	testEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, BackendSQLite, cfg.VectorBackend)
	assert.Equal(t, 1536, cfg.EmbeddingDimensions)
	assert.Equal(t, time.Hour, cfg.CatalogCacheTTL)
	assert.Equal(t, CacheMemory, cfg.CatalogCacheBackend)
	assert.Equal(t, 3, cfg.RecipesPerQuery)
	assert.Zero(t, cfg.MinSimilarity)
	assert.Equal(t, "per_ingredient", cfg.SpiceMode)
	assert.Equal(t, 100, cfg.WooCommerce.PerPage)
	assert.Equal(t, 1000, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "gpt-4-turbo", cfg.OpenAI.ChatModel)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	testEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("VECTOR_BACKEND", "PGVECTOR")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/recipes?sslmode=disable")
	t.Setenv("CATALOG_CACHE_TTL", "15m")
	t.Setenv("MIN_SIMILARITY", "0.75")
	t.Setenv("SPICE_MODE", "recipe_blend")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, BackendPgvector, cfg.VectorBackend)
	assert.Equal(t, "postgres://u:p@localhost:5432/recipes?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, 15*time.Minute, cfg.CatalogCacheTTL)
	assert.InDelta(t, 0.75, cfg.MinSimilarity, 1e-9)
	assert.Equal(t, "recipe_blend", cfg.SpiceMode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	testEnv(t)
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openai_api_key"), []byte("sk-from-file\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "admin_jwt_secret"), []byte("admin"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-file", cfg.OpenAI.APIKey)
	assert.Equal(t, "admin", cfg.AdminJWTSecret)

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey)
}

func TestValidateConfig(t *testing.T) {
	testEnv(t)

	t.Run("pgvector without database url", func(t *testing.T) {
		t.Setenv("VECTOR_BACKEND", "pgvector")
		_, err := LoadConfig()
		require.Error(t, err)

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "DATABASE_URL", verrs[0].Field)
	})

	t.Run("pgvector with a different embedding width", func(t *testing.T) {
		t.Setenv("VECTOR_BACKEND", "pgvector")
		t.Setenv("DATABASE_URL", "postgres://localhost/recipes")
		t.Setenv("EMBEDDING_DIMENSIONS", "256")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "EMBEDDING_DIMENSIONS")
	})

	t.Run("redis cache without url", func(t *testing.T) {
		t.Setenv("CATALOG_CACHE_BACKEND", "redis")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "REDIS_URL")
	})

	t.Run("unknown spice mode", func(t *testing.T) {
		t.Setenv("SPICE_MODE", "random")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "SPICE_MODE")
	})

	t.Run("production requirements", func(t *testing.T) {
		t.Setenv("ENV", "production")
		_, err := LoadConfig()
		require.Error(t, err)
		assert.ErrorContains(t, err, "OPENAI_API_KEY")
		assert.ErrorContains(t, err, "WOOCOMMERCE_STORE_URL")
		assert.ErrorContains(t, err, "ADMIN_JWT_SECRET")
	})
}
