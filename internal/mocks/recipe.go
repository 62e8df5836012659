package mocks

import (
	"context"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockRecipeStore is a mock implementation of the recipe vector store
type MockRecipeStore struct {
	mock.Mock
}

// Add mocks the Add method
func (m *MockRecipeStore) Add(ctx context.Context, r *model.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Search mocks the Search method
func (m *MockRecipeStore) Search(ctx context.Context, query string, n int, tags []string) ([]model.RetrievedRecipe, error) {
	args := m.Called(ctx, query, n, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RetrievedRecipe), args.Error(1)
}

// Get mocks the Get method
func (m *MockRecipeStore) Get(ctx context.Context, id string) (*model.Recipe, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.Recipe), args.Bool(1)
}

// Delete mocks the Delete method
func (m *MockRecipeStore) Delete(ctx context.Context, id string) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}

// Ping mocks the Ping method
func (m *MockRecipeStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
