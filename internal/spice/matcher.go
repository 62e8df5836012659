package spice

import (
	"context"
	"html"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"go.uber.org/zap"
)

// BlendKey is the recommendation key used when one blend covers a whole recipe.
const BlendKey = "recipe_blend"

// searchPhrases lists, per category, name fragments of the matching store blends.
var searchPhrases = map[Category][]string{
	Meat:       {"do mięs", "prowansalskie", "grillowa"},
	Fish:       {"do ryb", "cytrynow", "morskie"},
	Vegetables: {"do warzyw", "sałatk", "ziołow"},
	Salads:     {"sałatk", "ziołow", "vinegret"},
	Soups:      {"do zup", "bulion", "rosół"},
	Grains:     {"orientaln", "curry", "ziołow"},
	Pasta:      {"włosk", "ziołow", "do makaronu"},
	Grilled:    {"grillowa", "bbq", "do mięs"},
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// ProductSource provides the spice listing of the store.
type ProductSource interface {
	SpiceProducts(ctx context.Context) ([]model.Product, error)
}

// Matcher recommends store spices for ingredients.
type Matcher struct {
	products ProductSource
	storeURL string
	intn     func(n int) int
	log      *zap.Logger
}

// NewMatcher creates a Matcher. storeURL prefixes add-to-cart links.
func NewMatcher(products ProductSource, storeURL string, log *zap.Logger) *Matcher {
	return &Matcher{
		products: products,
		storeURL: strings.TrimRight(storeURL, "/"),
		intn:     rand.IntN,
		log:      log,
	}
}

// WithRand replaces the random source used by RecommendSingle.
func (m *Matcher) WithRand(intn func(n int) int) *Matcher {
	m.intn = intn
	return m
}

// Recommend maps each categorizable ingredient to a spice. The catalog is
// only consulted when at least one ingredient has a category. When no
// product name matches the category phrases the first product is used.
func (m *Matcher) Recommend(ctx context.Context, ingredients []string) (map[string]model.SpiceRecommendation, error) {
	out := make(map[string]model.SpiceRecommendation)
	var products []model.Product
	loaded := false

	for _, ingredient := range ingredients {
		category, ok := Categorize(ingredient)
		if !ok {
			continue
		}
		if !loaded {
			var err error
			products, err = m.products.SpiceProducts(ctx)
			if err != nil {
				return nil, err
			}
			loaded = true
		}
		if len(products) == 0 {
			break
		}
		p := match(products, searchPhrases[category])
		out[ingredient] = m.Recommendation(p)
		m.log.Debug("spice matched",
			zap.String("ingredient", ingredient),
			zap.String("category", string(category)),
			zap.Int64("product_id", p.ID))
	}
	return out, nil
}

// RecommendSingle picks one spice at random for a whole recipe. It returns
// nil when the catalog is empty.
func (m *Matcher) RecommendSingle(ctx context.Context, _ []string) (*model.SpiceRecommendation, error) {
	products, err := m.products.SpiceProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}
	rec := m.Recommendation(&products[m.intn(len(products))])
	return &rec, nil
}

// Recommendation converts a store product into its recommendation form.
func (m *Matcher) Recommendation(p *model.Product) model.SpiceRecommendation {
	rec := model.SpiceRecommendation{
		ID:           p.ID,
		Name:         p.Name,
		Description:  StripHTML(p.ShortDescription),
		Price:        p.Price,
		ProductURL:   p.Permalink,
		AddToCartURL: m.storeURL + "/?add-to-cart=" + strconv.FormatInt(p.ID, 10),
	}
	if len(p.Images) > 0 {
		rec.ImageURL = p.Images[0]
	}
	return rec
}

func match(products []model.Product, phrases []string) *model.Product {
	for i := range products {
		name := lowerPL(products[i].Name)
		for _, phrase := range phrases {
			if strings.Contains(name, phrase) {
				return &products[i]
			}
		}
	}
	return &products[0]
}

// StripHTML removes markup from catalog descriptions.
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTag.ReplaceAllString(s, "")))
}
