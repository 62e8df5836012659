package service

import (
	"context"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
)

// SpiceService lists the store spices in recommendation form.
type SpiceService struct {
	catalog SpiceCatalog
	spices  SpiceRecommender
}

// NewSpiceService creates a new SpiceService instance
func NewSpiceService(catalog SpiceCatalog, spices SpiceRecommender) *SpiceService {
	return &SpiceService{catalog: catalog, spices: spices}
}

// List returns every spice product.
func (s *SpiceService) List(ctx context.Context) ([]model.SpiceRecommendation, error) {
	products, err := s.catalog.SpiceProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.SpiceRecommendation, 0, len(products))
	for i := range products {
		out = append(out, s.spices.Recommendation(&products[i]))
	}
	return out, nil
}

// Get returns a single spice product.
func (s *SpiceService) Get(ctx context.Context, id int64) (*model.SpiceRecommendation, error) {
	p, err := s.catalog.SpiceProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := s.spices.Recommendation(p)
	return &rec, nil
}
