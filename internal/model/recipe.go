package model

import (
	"errors"
	"fmt"
	"strings"
)

// Ingredient is a single recipe ingredient. Amount is kept as text because
// catalog entries use values like "1/2" or an empty amount with unit "do smaku".
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

// Recipe is a curated recipe as stored in the vector store.
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	PrepTime     string       `json:"prep_time"`
	CookTime     string       `json:"cook_time"`
	Servings     int          `json:"servings"`
	Difficulty   string       `json:"difficulty"`
	Tags         []string     `json:"tags"`
	Source       string       `json:"source,omitempty"`
}

// Validate checks the invariants of a recipe that is about to be persisted.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if len(r.Ingredients) == 0 {
		return errors.New("at least one ingredient is required")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("ingredient %d has no name", i+1)
		}
	}
	if r.Servings <= 0 {
		return errors.New("servings must be a positive number")
	}
	return nil
}

// IngredientNames returns the bare ingredient names in recipe order.
func (r *Recipe) IngredientNames() []string {
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}
	return names
}

// RetrievedRecipe is a stored recipe returned by a similarity query.
type RetrievedRecipe struct {
	Recipe
	SimilarityScore float64 `json:"similarity_score"`
}

// ParsedRecipeDraft is a recipe recovered from generated text, before
// spice recommendations are attached.
type ParsedRecipeDraft struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	// Placeholder marks drafts synthesized because the text did not contain enough recipes.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Origin tells where an annotated recipe came from.
type Origin string

const (
	OriginCatalog   Origin = "catalog"
	OriginGenerated Origin = "generated"
)

// AnnotatedRecipe is a draft or a retrieved recipe with spice recommendations attached.
type AnnotatedRecipe struct {
	ParsedRecipeDraft
	Origin               Origin                         `json:"origin"`
	Recipe               *RetrievedRecipe               `json:"recipe,omitempty"`
	SpiceRecommendations map[string]SpiceRecommendation `json:"spice_recommendations"`
}

// DraftFromRecipe flattens a retrieved recipe into draft form so both
// origins share the same response shape.
func DraftFromRecipe(r *Recipe) ParsedRecipeDraft {
	ingredients := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, ing.String())
	}
	steps := make([]string, len(r.Instructions))
	copy(steps, r.Instructions)
	return ParsedRecipeDraft{
		Title:       r.Title,
		Ingredients: ingredients,
		Steps:       steps,
	}
}

// String renders the ingredient as "name (amount unit)".
func (i Ingredient) String() string {
	qty := strings.TrimSpace(i.Amount + " " + i.Unit)
	if qty == "" {
		return i.Name
	}
	return i.Name + " (" + qty + ")"
}
