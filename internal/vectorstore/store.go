// Package vectorstore persists recipes together with their embeddings and
// answers similarity queries. Postgres uses the pgvector cosine operator;
// sqlite scores candidates in process.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store is the recipe vector store.
type Store struct {
	db       *gorm.DB
	embedder Embedder
	log      *zap.Logger
}

func New(db *gorm.DB, embedder Embedder, log *zap.Logger) *Store {
	return &Store{db: db, embedder: embedder, log: log}
}

type scoredRecord struct {
	Record
	Distance float64
}

// Add embeds and upserts a recipe. Re-adding an id replaces the record.
func (s *Store) Add(ctx context.Context, r *model.Recipe) error {
	if strings.TrimSpace(r.ID) == "" {
		return apperr.MalformedInput("recipe id is required")
	}
	if err := r.Validate(); err != nil {
		return apperr.MalformedInput(err.Error())
	}

	vec, err := s.embedder.Embed(ctx, Document(r))
	if err != nil {
		s.log.Error("embedding failed", zap.String("recipe_id", r.ID), zap.Error(err))
		return apperr.StoreUnavailable(fmt.Errorf("embed recipe %s: %w", r.ID, err))
	}

	rec := newRecord(r, vec)
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
	if err != nil {
		s.log.Error("failed to store recipe", zap.String("recipe_id", r.ID), zap.Error(err))
		return apperr.StoreUnavailable(fmt.Errorf("store recipe %s: %w", r.ID, err))
	}
	s.log.Debug("recipe stored", zap.String("recipe_id", r.ID), zap.Int("dimensions", len(vec)))
	return nil
}

// Search returns up to n recipes closest to the query, most similar first.
// Every tag in tags must be present on a returned recipe.
func (s *Store) Search(ctx context.Context, query string, n int, tags []string) ([]model.RetrievedRecipe, error) {
	if n < 1 {
		return nil, apperr.MalformedInput("n_results must be at least 1")
	}
	filter := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = normalizeTag(t); t != "" {
			filter = append(filter, t)
		}
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.log.Error("query embedding failed", zap.Error(err))
		return nil, apperr.StoreUnavailable(fmt.Errorf("embed query: %w", err))
	}
	// A zero vector has no direction; pgvector would score it NaN against every row.
	if isZero(vec) {
		return nil, apperr.MalformedInput("query has no searchable words")
	}

	var scored []scoredRecord
	if s.db.Dialector.Name() == "postgres" {
		scored, err = s.searchPostgres(ctx, vec, n, filter)
	} else {
		scored, err = s.searchInProcess(ctx, vec, n, filter)
	}
	if err != nil {
		s.log.Error("similarity query failed", zap.Error(err))
		return nil, apperr.StoreUnavailable(fmt.Errorf("search recipes: %w", err))
	}

	results := make([]model.RetrievedRecipe, 0, len(scored))
	for i := range scored {
		results = append(results, model.RetrievedRecipe{
			Recipe:          *scored[i].recipe(),
			SimilarityScore: similarity(scored[i].Distance),
		})
	}
	return results, nil
}

func (s *Store) searchPostgres(ctx context.Context, vec []float32, n int, tags []string) ([]scoredRecord, error) {
	q := s.db.WithContext(ctx).
		Model(&Record{}).
		Select("recipes.*, embedding <=> ? AS distance", pgvector.NewVector(vec))
	for _, t := range tags {
		q = q.Where("tags LIKE ? ESCAPE '\\'", "%"+tagSeparator+escapeLike(t)+tagSeparator+"%")
	}

	var scored []scoredRecord
	if err := q.Order("distance ASC").Limit(n).Find(&scored).Error; err != nil {
		return nil, err
	}
	return scored, nil
}

// searchInProcess scores every tag-matching record in Go. Used with sqlite,
// which has no vector index.
func (s *Store) searchInProcess(ctx context.Context, vec []float32, n int, tags []string) ([]scoredRecord, error) {
	q := s.db.WithContext(ctx).Model(&Record{})
	for _, t := range tags {
		q = q.Where("tags LIKE ? ESCAPE '\\'", "%"+tagSeparator+escapeLike(t)+tagSeparator+"%")
	}

	var records []Record
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}

	scored := make([]scoredRecord, 0, len(records))
	for _, rec := range records {
		// sqlite LIKE ignores ASCII case, tags are matched exactly.
		if !hasTags(rec.Tags, tags) {
			continue
		}
		scored = append(scored, scoredRecord{Record: rec, Distance: cosineDistance(vec, rec.Embedding.Slice())})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Distance < scored[j].Distance
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored, nil
}

// Get fetches a recipe by id. Storage errors are logged and reported as absence.
func (s *Store) Get(ctx context.Context, id string) (*model.Recipe, bool) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("recipe lookup failed", zap.String("recipe_id", id), zap.Error(err))
		}
		return nil, false
	}
	return rec.recipe(), true
}

// Delete removes a recipe and reports whether it existed. Storage errors
// are logged and reported as false.
func (s *Store) Delete(ctx context.Context, id string) bool {
	res := s.db.WithContext(ctx).Delete(&Record{}, "id = ?", id)
	if res.Error != nil {
		s.log.Warn("recipe delete failed", zap.String("recipe_id", id), zap.Error(res.Error))
		return false
	}
	return res.RowsAffected > 0
}

// Ping checks that the underlying database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// similarity converts a cosine distance into a score in [0, 1].
func similarity(distance float64) float64 {
	sim := 1 - distance
	switch {
	case math.IsNaN(sim) || sim < 0:
		return 0
	case sim > 1:
		return 1
	}
	return sim
}

func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return 1
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

func isZero(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
