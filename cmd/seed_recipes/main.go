package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/flavorinthejar/smakosz/backend/config"
	"github.com/flavorinthejar/smakosz/backend/internal/data"
	"github.com/flavorinthejar/smakosz/backend/internal/database"
	"github.com/flavorinthejar/smakosz/backend/internal/embedding"
	"github.com/flavorinthejar/smakosz/backend/internal/llm"
	"github.com/flavorinthejar/smakosz/backend/internal/logger"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/flavorinthejar/smakosz/backend/internal/server"
	"github.com/flavorinthejar/smakosz/backend/internal/vectorstore"
)

func main() {
	file := flag.String("file", "", "JSON file with an array of recipes; the built-in samples are used when empty")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	zapLog, err := logger.New(cfg.LogLevel, cfg.Environment.String())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	recipes := data.SampleRecipes()
	if *file != "" {
		if recipes, err = loadRecipes(*file); err != nil {
			zapLog.Fatal("Failed to load recipes", zap.String("file", *file), zap.Error(err))
		}
	}

	db, err := database.Open(cfg, zapLog)
	if err != nil {
		zapLog.Fatal("Failed to open database", zap.Error(err))
	}
	if err := database.RunMigrations(db, server.MigrationsDir, zapLog); err != nil {
		zapLog.Fatal("Failed to run migrations", zap.Error(err))
	}

	var embedder vectorstore.Embedder = embedding.NewHashEmbedder(cfg.EmbeddingDimensions)
	if cfg.Embedder == config.EmbedderOpenAI {
		client, err := llm.NewClient(llm.Config{
			APIKey:         cfg.OpenAI.APIKey,
			BaseURL:        cfg.OpenAI.BaseURL,
			EmbeddingModel: cfg.OpenAI.EmbeddingModel,
			Dimensions:     cfg.EmbeddingDimensions,
		}, zapLog)
		if err != nil {
			zapLog.Fatal("Failed to create OpenAI client", zap.Error(err))
		}
		embedder = client
	}
	store := vectorstore.New(db, embedder, zapLog)

	ctx := context.Background()
	seeded := 0
	for i := range recipes {
		if err := store.Add(ctx, &recipes[i]); err != nil {
			zapLog.Error("Failed to seed recipe", zap.String("title", recipes[i].Title), zap.Error(err))
			continue
		}
		seeded++
	}
	zapLog.Info("Seeding completed", zap.Int("seeded", seeded), zap.Int("total", len(recipes)))
}

func loadRecipes(path string) ([]model.Recipe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var recipes []model.Recipe
	if err := json.Unmarshal(raw, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}
