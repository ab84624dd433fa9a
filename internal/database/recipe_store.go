package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/types"
)

// RecipeStore persists recipes through gorm. It holds no business rules;
// missing rows surface as types.ErrNotFound and engine failures as
// types.ErrStorage.
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore creates a new RecipeStore instance
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

// Create inserts a new recipe row.
func (s *RecipeStore) Create(ctx context.Context, recipe *model.Recipe) error {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return fmt.Errorf("%w: creating recipe: %w", types.ErrStorage, err)
	}
	return nil
}

// Get loads a recipe by id.
func (s *RecipeStore) Get(ctx context.Context, id string) (model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Recipe{}, fmt.Errorf("%w: recipe %s", types.ErrNotFound, id)
		}
		return model.Recipe{}, fmt.Errorf("%w: loading recipe %s: %w", types.ErrStorage, id, err)
	}
	return recipe, nil
}

// List returns up to limit recipes starting at offset, ordered by name
// then id so pages are stable, plus the total row count.
func (s *RecipeStore) List(ctx context.Context, offset, limit int) ([]model.Recipe, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: counting recipes: %w", types.ErrStorage, err)
	}

	recipes := []model.Recipe{}
	if int64(offset) >= total {
		return recipes, total, nil
	}

	err := s.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing recipes: %w", types.ErrStorage, err)
	}
	return recipes, total, nil
}

// UpdateImageURL sets image_url on an existing recipe.
func (s *RecipeStore) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	result := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Where("id = ?", id).
		Update("image_url", imageURL)
	if result.Error != nil {
		return fmt.Errorf("%w: updating image for recipe %s: %w", types.ErrStorage, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %s", types.ErrNotFound, id)
	}
	return nil
}

// Delete removes a recipe row.
func (s *RecipeStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("%w: deleting recipe %s: %w", types.ErrStorage, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %s", types.ErrNotFound, id)
	}
	return nil
}

// Count returns the number of stored recipes.
func (s *RecipeStore) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: counting recipes: %w", types.ErrStorage, err)
	}
	return total, nil
}
