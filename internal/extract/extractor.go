// Package extract recovers structured recipes from generated text. It
// understands JSON payloads (including malformed ones) and markdown-ish
// prose, and never fails: unreadable text yields a placeholder draft.
package extract

import (
	"fmt"
	"strings"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultTitle    = "Propozycja przepisu"
	placeholderStep = "Nie udało się odczytać przepisu z odpowiedzi. Spróbuj sformułować zapytanie inaczej."

	alternativeTitle       = "Alternatywna propozycja %d"
	alternativeIngredient  = "Składniki zostaną zaproponowane w kolejnym zapytaniu"
	alternativeInstruction = "Zapytaj ponownie, aby otrzymać szczegóły tej propozycji."
)

// Extractor parses generated recipe text.
type Extractor struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract returns the recipes found in text, trying in order: a JSON
// payload, salvage of malformed JSON, prose. The result is never empty.
func (e *Extractor) Extract(text string) []model.ParsedRecipeDraft {
	if drafts, ok := parseStructured(text); ok {
		e.log.Debug("extracted structured recipes", zap.Int("count", len(drafts)))
		return drafts
	}
	if looksLikeJSON(text) {
		if d, ok := salvage(text); ok {
			e.log.Debug("salvaged recipe from malformed json", zap.String("title", d.Title))
			return []model.ParsedRecipeDraft{d}
		}
	}
	if drafts := parseProse(text); len(drafts) > 0 {
		e.log.Debug("extracted prose recipes", zap.Int("count", len(drafts)))
		return drafts
	}

	e.log.Warn("no recipe found in generated text", zap.Int("length", len(text)))
	return []model.ParsedRecipeDraft{{
		Title:       DefaultTitle,
		Ingredients: []string{},
		Steps:       []string{placeholderStep},
		Placeholder: true,
	}}
}

// ExtractN extracts exactly n drafts. Missing recipes are padded with
// labeled placeholders, extra ones are dropped.
func (e *Extractor) ExtractN(text string, n int) []model.ParsedRecipeDraft {
	drafts := e.Extract(text)
	if n <= 0 {
		return drafts
	}
	if len(drafts) > n {
		return drafts[:n]
	}
	for i := len(drafts); i < n; i++ {
		drafts = append(drafts, model.ParsedRecipeDraft{
			Title:       fmt.Sprintf(alternativeTitle, i+1),
			Ingredients: []string{alternativeIngredient},
			Steps:       []string{alternativeInstruction},
			Placeholder: true,
		})
	}
	return drafts
}

func looksLikeJSON(text string) bool {
	return strings.Contains(text, `"title"`) ||
		strings.Contains(text, `"ingredients"`) ||
		strings.Contains(text, `"steps"`)
}
