package service

import (
	"context"
	"io"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
)

// RecipeStore is the vector store holding the curated recipes.
type RecipeStore interface {
	Add(ctx context.Context, r *model.Recipe) error
	Search(ctx context.Context, query string, n int, tags []string) ([]model.RetrievedRecipe, error)
	Get(ctx context.Context, id string) (*model.Recipe, bool)
	Delete(ctx context.Context, id string) bool
	Ping(ctx context.Context) error
}

// Generator produces recipe text from a prompt.
type Generator interface {
	Generate(ctx context.Context, req model.CompletionRequest) (*model.Completion, error)
	GenerateStream(ctx context.Context, req model.CompletionRequest, onChunk func(string) error) (*model.Completion, error)
}

// Transcriber turns recorded speech into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// ImageDescriber describes the contents of a photo.
type ImageDescriber interface {
	DescribeImage(ctx context.Context, contentType string, image []byte, prompt string) (string, error)
}

// Extractor recovers recipe drafts from generated text.
type Extractor interface {
	Extract(text string) []model.ParsedRecipeDraft
	ExtractN(text string, n int) []model.ParsedRecipeDraft
}

// SpiceRecommender picks store spices for recipe ingredients.
type SpiceRecommender interface {
	Recommend(ctx context.Context, ingredients []string) (map[string]model.SpiceRecommendation, error)
	RecommendSingle(ctx context.Context, ingredients []string) (*model.SpiceRecommendation, error)
	Recommendation(p *model.Product) model.SpiceRecommendation
}

// SpiceCatalog lists the spice products of the store.
type SpiceCatalog interface {
	SpiceProducts(ctx context.Context) ([]model.Product, error)
	SpiceProduct(ctx context.Context, id int64) (*model.Product, error)
}

// ImageArchive keeps uploaded query photos. It returns the object URL.
type ImageArchive interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
