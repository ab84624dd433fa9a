package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/service"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

// CreateRecipe mocks the CreateRecipe method
func (m *MockRecipeService) CreateRecipe(ctx context.Context, input model.RecipeInput) (model.Recipe, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(model.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, id string) (model.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Recipe), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, page, size int) (model.Page, error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(model.Page), args.Error(1)
}

// DeleteRecipe mocks the DeleteRecipe method
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id string) (service.CleanupResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(service.CleanupResult), args.Error(1)
}

// UploadImage mocks the UploadImage method
func (m *MockRecipeService) UploadImage(ctx context.Context, id string, data []byte, originalFilename string) (string, error) {
	args := m.Called(ctx, id, data, originalFilename)
	return args.String(0), args.Error(1)
}

// GetImage mocks the GetImage method
func (m *MockRecipeService) GetImage(ctx context.Context, filename string) (service.Image, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).(service.Image), args.Error(1)
}
