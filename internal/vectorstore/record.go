package vectorstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	pgvector "github.com/pgvector/pgvector-go"
)

const tagSeparator = ","

// Record is the stored form of a recipe: flattened metadata, the document
// text that was embedded and its vector.
type Record struct {
	ID           string             `gorm:"primaryKey;type:text"`
	Title        string             `gorm:"type:text;not null"`
	Description  string             `gorm:"type:text"`
	Ingredients  []model.Ingredient `gorm:"type:text;serializer:json"`
	Instructions []string           `gorm:"type:text;serializer:json"`
	PrepTime     string             `gorm:"type:text"`
	CookTime     string             `gorm:"type:text"`
	Servings     int
	Difficulty   string `gorm:"type:text"`
	// Tags is ",a,b," so that a LIKE '%,a,%' filter matches whole tags only.
	Tags      string          `gorm:"type:text;index"`
	Source    string          `gorm:"type:text"`
	Document  string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Record) TableName() string {
	return "recipes"
}

// Document renders the text that is embedded for a recipe. The layout is
// fixed: changing it changes every stored vector.
func Document(r *model.Recipe) string {
	lines := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		lines = append(lines, fmt.Sprintf("%s %s %s", ing.Amount, ing.Unit, ing.Name))
	}
	return r.Title + "\n" + r.Description + "\n" +
		"Składniki:\n" + strings.Join(lines, "\n") +
		"\nInstrukcje:\n" + strings.Join(r.Instructions, "\n")
}

func newRecord(r *model.Recipe, vec []float32) *Record {
	return &Record{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Tags:         joinTags(r.Tags),
		Source:       r.Source,
		Document:     Document(r),
		Embedding:    pgvector.NewVector(vec),
	}
}

func (rec *Record) recipe() *model.Recipe {
	ingredients := rec.Ingredients
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	instructions := rec.Instructions
	if instructions == nil {
		instructions = []string{}
	}
	return &model.Recipe{
		ID:           rec.ID,
		Title:        rec.Title,
		Description:  rec.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     rec.PrepTime,
		CookTime:     rec.CookTime,
		Servings:     rec.Servings,
		Difficulty:   rec.Difficulty,
		Tags:         splitTags(rec.Tags),
		Source:       rec.Source,
	}
}

// joinTags trims, drops empty and duplicate tags. Separators inside a tag
// are replaced so they cannot break the stored format.
func joinTags(tags []string) string {
	seen := make(map[string]bool, len(tags))
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		clean = append(clean, t)
	}
	if len(clean) == 0 {
		return ""
	}
	return tagSeparator + strings.Join(clean, tagSeparator) + tagSeparator
}

func splitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, tagSeparator) {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func normalizeTag(t string) string {
	return strings.TrimSpace(strings.ReplaceAll(t, tagSeparator, " "))
}

// hasTags reports whether the stored tag string holds every tag.
func hasTags(stored string, tags []string) bool {
	for _, t := range tags {
		if !strings.Contains(stored, tagSeparator+t+tagSeparator) {
			return false
		}
	}
	return true
}
