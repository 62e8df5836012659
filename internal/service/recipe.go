package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/flavorinthejar/smakosz/backend/internal/spice"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SpiceMode selects how recipes are annotated with spices.
type SpiceMode string

const (
	// SpicePerIngredient recommends a spice for every categorizable ingredient.
	SpicePerIngredient SpiceMode = "per_ingredient"
	// SpiceRecipeBlend recommends one random blend for the whole recipe.
	SpiceRecipeBlend SpiceMode = "recipe_blend"
)

const blendIngredientFormat = "Mieszanka przypraw: %s (%s)"

// Options tunes retrieval and generation. Zero values take the defaults.
type Options struct {
	RecipesPerQuery int
	// MinSimilarity drops retrieved recipes scoring below it. A query with
	// no recipe left falls back to generation. Zero keeps every match.
	MinSimilarity  float64
	SpiceMode      SpiceMode
	MaxTokens      int
	Temperature    float32
	MaxUploadBytes int64
}

func (o Options) withDefaults() Options {
	if o.RecipesPerQuery <= 0 {
		o.RecipesPerQuery = 3
	}
	if o.MinSimilarity < 0 {
		o.MinSimilarity = 0
	}
	if o.SpiceMode == "" {
		o.SpiceMode = SpicePerIngredient
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = 1000
	}
	if o.Temperature <= 0 {
		o.Temperature = 0.7
	}
	if o.MaxUploadBytes <= 0 {
		o.MaxUploadBytes = 20 << 20
	}
	return o
}

// AnalyzeRequest is a recipe query with optional constraints.
type AnalyzeRequest struct {
	Query               string   `json:"query"`
	Calories            int      `json:"calories,omitempty"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	// Count fixes the number of generated recipes; shortfalls are padded
	// with placeholders. Zero returns whatever was generated.
	Count int `json:"count,omitempty"`
}

// AnalyzeResult is the answer to a recipe query.
type AnalyzeResult struct {
	Recipes    []model.AnnotatedRecipe `json:"recipes"`
	Origin     model.Origin            `json:"origin"`
	TokensUsed *model.Usage            `json:"tokens_used,omitempty"`
	Transcript string                  `json:"transcript,omitempty"`
	Analysis   string                  `json:"analysis,omitempty"`
	ImageURL   string                  `json:"image_url,omitempty"`
}

type state string

const (
	stateRetrieving  state = "retrieving"
	stateRetrieved   state = "retrieved"
	stateFallingBack state = "falling_back"
	stateExtracting  state = "extracting"
	stateAnnotating  state = "annotating"
	stateDone        state = "done"
	stateError       state = "error"
)

// RecipeService answers recipe queries from the curated store and falls
// back to generation when the store has nothing close enough.
type RecipeService struct {
	store     RecipeStore
	generator Generator
	extractor Extractor
	spices    SpiceRecommender
	opts      Options
	log       *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(store RecipeStore, generator Generator, extractor Extractor, spices SpiceRecommender, opts Options, log *zap.Logger) *RecipeService {
	return &RecipeService{
		store:     store,
		generator: generator,
		extractor: extractor,
		spices:    spices,
		opts:      opts.withDefaults(),
		log:       log,
	}
}

// Options returns the effective options.
func (s *RecipeService) Options() Options {
	return s.opts
}

func (s *RecipeService) trace(query string, st state, fields ...zap.Field) {
	s.log.Debug("analyze", append([]zap.Field{zap.String("query", query), zap.String("state", string(st))}, fields...)...)
}

// Analyze answers a query with stored recipes when any are similar enough,
// otherwise with generated ones.
func (s *RecipeService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	return s.analyze(ctx, req, func(ctx context.Context, cr model.CompletionRequest) (*model.Completion, error) {
		return s.generator.Generate(ctx, cr)
	})
}

// AnalyzeStream is Analyze with generated text passed to onChunk as it
// arrives. Answers served from the store produce no chunks.
func (s *RecipeService) AnalyzeStream(ctx context.Context, req AnalyzeRequest, onChunk func(string) error) (*AnalyzeResult, error) {
	return s.analyze(ctx, req, func(ctx context.Context, cr model.CompletionRequest) (*model.Completion, error) {
		return s.generator.GenerateStream(ctx, cr, onChunk)
	})
}

type generateFunc func(ctx context.Context, req model.CompletionRequest) (*model.Completion, error)

func (s *RecipeService) analyze(ctx context.Context, req AnalyzeRequest, generate generateFunc) (*AnalyzeResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, apperr.MalformedInput("query must not be empty")
	}

	s.trace(query, stateRetrieving)
	if retrieved := s.retrieve(ctx, query, req.DietaryRestrictions); len(retrieved) > 0 {
		s.trace(query, stateRetrieved, zap.Int("recipes", len(retrieved)))
		s.trace(query, stateAnnotating)
		recipes := make([]model.AnnotatedRecipe, 0, len(retrieved))
		for i := range retrieved {
			r := &retrieved[i]
			recipes = append(recipes, s.annotate(ctx, model.AnnotatedRecipe{
				ParsedRecipeDraft: model.DraftFromRecipe(&r.Recipe),
				Origin:            model.OriginCatalog,
				Recipe:            r,
			}, r.IngredientNames()))
		}
		s.trace(query, stateDone)
		return &AnalyzeResult{Recipes: recipes, Origin: model.OriginCatalog}, nil
	}

	s.trace(query, stateFallingBack)
	completion, err := generate(ctx, model.CompletionRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt(query, req.Calories, req.DietaryRestrictions),
		MaxTokens:    s.opts.MaxTokens,
		Temperature:  s.opts.Temperature,
	})
	if err != nil {
		s.trace(query, stateError, zap.Error(err))
		return nil, generationError(err)
	}

	s.trace(query, stateExtracting, zap.Int("total_tokens", completion.Usage.TotalTokens))
	var drafts []model.ParsedRecipeDraft
	if req.Count > 0 {
		drafts = s.extractor.ExtractN(completion.Text, req.Count)
	} else {
		drafts = s.extractor.Extract(completion.Text)
	}

	s.trace(query, stateAnnotating, zap.Int("recipes", len(drafts)))
	recipes := make([]model.AnnotatedRecipe, 0, len(drafts))
	for _, d := range drafts {
		ar := model.AnnotatedRecipe{ParsedRecipeDraft: d, Origin: model.OriginGenerated}
		if d.Placeholder {
			ar.SpiceRecommendations = map[string]model.SpiceRecommendation{}
			recipes = append(recipes, ar)
			continue
		}
		recipes = append(recipes, s.annotate(ctx, ar, d.Ingredients))
	}
	s.trace(query, stateDone)

	usage := completion.Usage
	return &AnalyzeResult{Recipes: recipes, Origin: model.OriginGenerated, TokensUsed: &usage}, nil
}

// retrieve returns stored recipes similar enough to the query. Store
// failures are logged and treated as no result.
func (s *RecipeService) retrieve(ctx context.Context, query string, tags []string) []model.RetrievedRecipe {
	results, err := s.store.Search(ctx, query, s.opts.RecipesPerQuery, tags)
	if err != nil {
		s.log.Warn("recipe retrieval failed, falling back to generation", zap.String("query", query), zap.Error(err))
		return nil
	}
	kept := results[:0]
	for _, r := range results {
		if r.SimilarityScore >= s.opts.MinSimilarity {
			kept = append(kept, r)
		}
	}
	return kept
}

// annotate attaches spice recommendations. Catalog failures leave the
// recipe without recommendations.
func (s *RecipeService) annotate(ctx context.Context, ar model.AnnotatedRecipe, ingredients []string) model.AnnotatedRecipe {
	ar.SpiceRecommendations = map[string]model.SpiceRecommendation{}

	if s.opts.SpiceMode == SpiceRecipeBlend {
		blend, err := s.spices.RecommendSingle(ctx, ingredients)
		if err != nil {
			s.log.Warn("spice blend unavailable", zap.String("title", ar.Title), zap.Error(err))
			return ar
		}
		if blend != nil {
			ar.SpiceRecommendations[spice.BlendKey] = *blend
			ar.Ingredients = append(ar.Ingredients, fmt.Sprintf(blendIngredientFormat, blend.Name, blend.Description))
		}
		return ar
	}

	recs, err := s.spices.Recommend(ctx, ingredients)
	if err != nil {
		s.log.Warn("spice recommendations unavailable", zap.String("title", ar.Title), zap.Error(err))
		return ar
	}
	for k, v := range recs {
		ar.SpiceRecommendations[k] = v
	}
	return ar
}

// generationError makes sure a collaborator failure surfaces as GenerationFailed.
func generationError(err error) error {
	if errors.Is(err, apperr.ErrGenerationFailed) || errors.Is(err, context.Canceled) {
		return err
	}
	return apperr.GenerationFailed("", err)
}

// Search queries the store directly. Unlike Analyze, store failures are returned.
func (s *RecipeService) Search(ctx context.Context, query string, tags []string, limit int) ([]model.RetrievedRecipe, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperr.MalformedInput("query must not be empty")
	}
	if limit <= 0 {
		limit = s.opts.RecipesPerQuery
	}
	return s.store.Search(ctx, query, limit, tags)
}

// AddRecipe stores a recipe and returns its id. An id is generated when missing.
func (s *RecipeService) AddRecipe(ctx context.Context, r *model.Recipe) (string, error) {
	if strings.TrimSpace(r.ID) == "" {
		r.ID = uuid.NewString()
	}
	if err := s.store.Add(ctx, r); err != nil {
		return "", err
	}
	s.log.Info("recipe added", zap.String("recipe_id", r.ID), zap.String("title", r.Title))
	return r.ID, nil
}

// GetRecipe fetches a stored recipe.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	r, ok := s.store.Get(ctx, id)
	if !ok {
		return nil, apperr.NotFound("recipe not found")
	}
	return r, nil
}

// DeleteRecipe removes a stored recipe and reports whether it existed.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) bool {
	deleted := s.store.Delete(ctx, id)
	if deleted {
		s.log.Info("recipe deleted", zap.String("recipe_id", id))
	}
	return deleted
}

// Ping reports whether the recipe store is reachable.
func (s *RecipeService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
