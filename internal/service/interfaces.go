package service

import (
	"context"

	"github.com/pageza/recipebox/backend/internal/model"
)

// RecipeStore is the persistence contract the recipe service relies on.
type RecipeStore interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Get(ctx context.Context, id string) (model.Recipe, error)
	List(ctx context.Context, offset, limit int) ([]model.Recipe, int64, error)
	UpdateImageURL(ctx context.Context, id, imageURL string) error
	Delete(ctx context.Context, id string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, input model.RecipeInput) (model.Recipe, error)
	GetRecipe(ctx context.Context, id string) (model.Recipe, error)
	ListRecipes(ctx context.Context, page, size int) (model.Page, error)
	DeleteRecipe(ctx context.Context, id string) (CleanupResult, error)
	UploadImage(ctx context.Context, id string, data []byte, originalFilename string) (string, error)
	GetImage(ctx context.Context, filename string) (Image, error)
}
