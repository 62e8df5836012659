// Package mocks holds testify mocks of the service collaborators.
package mocks

import (
	"context"
	"io"

	"github.com/flavorinthejar/smakosz/backend/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of the generation collaborator
type MockGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockGenerator) Generate(ctx context.Context, req model.CompletionRequest) (*model.Completion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Completion), args.Error(1)
}

// GenerateStream mocks the GenerateStream method. Chunks registered with
// Return as a third value are replayed through onChunk.
func (m *MockGenerator) GenerateStream(ctx context.Context, req model.CompletionRequest, onChunk func(string) error) (*model.Completion, error) {
	args := m.Called(ctx, req, onChunk)
	if len(args) > 2 {
		if chunks, ok := args.Get(2).([]string); ok {
			for _, c := range chunks {
				if err := onChunk(c); err != nil {
					return nil, err
				}
			}
		}
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Completion), args.Error(1)
}

// MockTranscriber is a mock implementation of speech transcription
type MockTranscriber struct {
	mock.Mock
}

// Transcribe mocks the Transcribe method
func (m *MockTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	args := m.Called(ctx, filename, audio)
	return args.String(0), args.Error(1)
}

// MockImageDescriber is a mock implementation of image description
type MockImageDescriber struct {
	mock.Mock
}

// DescribeImage mocks the DescribeImage method
func (m *MockImageDescriber) DescribeImage(ctx context.Context, contentType string, image []byte, prompt string) (string, error) {
	args := m.Called(ctx, contentType, image, prompt)
	return args.String(0), args.Error(1)
}

// MockImageArchive is a mock implementation of the image archive
type MockImageArchive struct {
	mock.Mock
}

// Put mocks the Put method
func (m *MockImageArchive) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, key, contentType, data)
	return args.String(0), args.Error(1)
}

// MockSpiceCatalog is a mock implementation of the spice catalog
type MockSpiceCatalog struct {
	mock.Mock
}

// SpiceProducts mocks the SpiceProducts method
func (m *MockSpiceCatalog) SpiceProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// SpiceProduct mocks the SpiceProduct method
func (m *MockSpiceCatalog) SpiceProduct(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}
