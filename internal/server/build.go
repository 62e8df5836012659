package server

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/config"
	"github.com/flavorinthejar/smakosz/backend/internal/catalog"
	"github.com/flavorinthejar/smakosz/backend/internal/database"
	"github.com/flavorinthejar/smakosz/backend/internal/embedding"
	"github.com/flavorinthejar/smakosz/backend/internal/extract"
	"github.com/flavorinthejar/smakosz/backend/internal/llm"
	"github.com/flavorinthejar/smakosz/backend/internal/middleware"
	"github.com/flavorinthejar/smakosz/backend/internal/router"
	"github.com/flavorinthejar/smakosz/backend/internal/service"
	"github.com/flavorinthejar/smakosz/backend/internal/spice"
	"github.com/flavorinthejar/smakosz/backend/internal/storage"
	"github.com/flavorinthejar/smakosz/backend/internal/vectorstore"
	"github.com/flavorinthejar/smakosz/backend/internal/woocommerce"
)

// MigrationsDir is where the SQL migrations are looked up, relative to the
// working directory.
const MigrationsDir = "migrations"

// Build connects every backend named by cfg and assembles the server.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (srv *Server, err error) {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	closers := []func() error{sqlDB.Close}
	defer func() {
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
		}
	}()

	if err = database.RunMigrations(db, MigrationsDir, log); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL, log)
		switch {
		case err != nil && cfg.CatalogCacheBackend == config.CacheRedis:
			return nil, err
		case err != nil:
			log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			redisClient, err = nil, nil
		default:
			closers = append(closers, redisClient.Close)
		}
	}

	openai, err := llm.NewClient(llm.Config{
		APIKey:         cfg.OpenAI.APIKey,
		BaseURL:        cfg.OpenAI.BaseURL,
		ChatModel:      cfg.OpenAI.ChatModel,
		VisionModel:    cfg.OpenAI.VisionModel,
		EmbeddingModel: cfg.OpenAI.EmbeddingModel,
		Dimensions:     cfg.EmbeddingDimensions,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	var embedder vectorstore.Embedder = openai
	if cfg.Embedder == config.EmbedderHash {
		embedder = embedding.NewHashEmbedder(cfg.EmbeddingDimensions)
	}
	store := vectorstore.New(db, embedder, log)

	var cacheStore catalog.Store = catalog.NewMemoryStore()
	if cfg.CatalogCacheBackend == config.CacheRedis {
		cacheStore = catalog.NewRedisStore(redisClient, cfg.CatalogCacheTTL, log)
	}
	shop := woocommerce.NewClient(woocommerce.Config{
		StoreURL:       cfg.WooCommerce.StoreURL,
		ConsumerKey:    cfg.WooCommerce.ConsumerKey,
		ConsumerSecret: cfg.WooCommerce.ConsumerSecret,
		Timeout:        cfg.WooCommerce.Timeout,
	}, log)
	spiceCatalog := catalog.New(shop, cacheStore, catalog.Config{
		TTL:     cfg.CatalogCacheTTL,
		PerPage: cfg.WooCommerce.PerPage,
	}, log)
	matcher := spice.NewMatcher(spiceCatalog, cfg.WooCommerce.StoreURL, log)

	recipes := service.NewRecipeService(store, openai, extract.New(log), matcher, service.Options{
		RecipesPerQuery: cfg.RecipesPerQuery,
		MinSimilarity:   cfg.MinSimilarity,
		SpiceMode:       service.SpiceMode(cfg.SpiceMode),
		MaxTokens:       cfg.OpenAI.MaxTokens,
		Temperature:     float32(cfg.OpenAI.Temperature),
		MaxUploadBytes:  cfg.MaxUploadBytes,
	}, log)

	var archive service.ImageArchive
	if cfg.S3Bucket != "" {
		s3Archive, s3Err := storage.NewS3Archive(ctx, cfg.S3Bucket, cfg.AWSRegion)
		if s3Err != nil {
			log.Warn("image archive disabled", zap.Error(s3Err))
		} else {
			archive = s3Archive
		}
	}
	media := service.NewMediaService(recipes, openai, openai, archive, log)

	var limiter *middleware.RateLimiter
	if redisClient != nil && cfg.RateLimitRequests > 0 {
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Limit:  cfg.RateLimitRequests,
		}, log)
	}

	engine := router.SetupRouter(router.Dependencies{
		Recipes:        recipes,
		Media:          media,
		Spices:         service.NewSpiceService(spiceCatalog, matcher),
		AdminSecret:    cfg.AdminJWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxUploadBytes,
		RateLimiter:    limiter,
		Log:            log,
	})

	return New(cfg.Addr(), engine, log, closers...), nil
}
