package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/model"
	"github.com/pageza/recipebox/backend/internal/storage"
	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	// DefaultPageSize is used by callers that do not pass a size.
	DefaultPageSize = 10
	// MaxPageSize caps a single listing page.
	MaxPageSize = 100
)

// CleanupResult reports the best-effort removal of a deleted recipe's image.
// It is independent of whether the delete itself succeeded.
type CleanupResult struct {
	// Attempted is false when the recipe had no image.
	Attempted bool
	Filename  string
	// Err is the swallowed failure, if any.
	Err error
}

// Succeeded reports whether there was nothing to clean or the image was removed.
func (r CleanupResult) Succeeded() bool {
	return r.Err == nil
}

// Image is a stored recipe image.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RecipeService handles recipe operations. It is the only component that
// touches both the recipe store and the image store.
type RecipeService struct {
	store   RecipeStore
	images  storage.ImageStore
	baseURL string
	log     *logrus.Logger
	metrics *metrics.Metrics
}

// NewRecipeService creates a new RecipeService instance. baseURL prefixes
// generated image URLs; m may be nil.
func NewRecipeService(store RecipeStore, images storage.ImageStore, baseURL string, log *logrus.Logger, m *metrics.Metrics) *RecipeService {
	return &RecipeService{
		store:   store,
		images:  images,
		baseURL: baseURL,
		log:     log,
		metrics: m,
	}
}

// CreateRecipe stores a new recipe under a freshly generated id.
func (s *RecipeService) CreateRecipe(ctx context.Context, input model.RecipeInput) (model.Recipe, error) {
	recipe := model.Recipe{
		ID:       uuid.NewString(),
		Name:     input.Name,
		Category: input.Category,
		Recipe:   input.Recipe,
	}

	err := s.store.Create(ctx, &recipe)
	s.record("create", err)
	if err != nil {
		return model.Recipe{}, err
	}

	s.log.WithField("recipe_id", recipe.ID).Info("Recipe created")
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (model.Recipe, error) {
	return s.store.Get(ctx, id)
}

// ListRecipes returns the 0-indexed page of recipes ordered by name.
func (s *RecipeService) ListRecipes(ctx context.Context, page, size int) (model.Page, error) {
	if page < 0 {
		return model.Page{}, fmt.Errorf("%w: page must not be negative", types.ErrValidation)
	}
	if size < 1 {
		return model.Page{}, fmt.Errorf("%w: size must be at least 1", types.ErrValidation)
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	offset := page * size
	if page > math.MaxInt/size {
		offset = math.MaxInt
	}

	recipes, total, err := s.store.List(ctx, offset, size)
	if err != nil {
		return model.Page{}, err
	}
	return model.NewPage(recipes, page, size, total), nil
}

// DeleteRecipe removes the recipe record and then, best effort, its image.
// A failed image removal is logged and reported in the CleanupResult but
// never returned as an error.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) (CleanupResult, error) {
	recipe, err := s.store.Get(ctx, id)
	if err != nil {
		s.record("delete", err)
		return CleanupResult{}, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.record("delete", err)
		return CleanupResult{}, err
	}
	s.record("delete", nil)
	s.log.WithField("recipe_id", id).Info("Recipe deleted")

	if !recipe.HasImage() {
		return CleanupResult{}, nil
	}
	return s.cleanupImage(ctx, id, storage.FilenameFromURL(recipe.ImageURL)), nil
}

// UploadImage stores data as the recipe's image and points imageUrl at it.
// The record is only updated after the file write succeeded.
func (s *RecipeService) UploadImage(ctx context.Context, id string, data []byte, originalFilename string) (string, error) {
	s.log.WithField("recipe_id", id).Info("Saving image for recipe")

	existing, err := s.store.Get(ctx, id)
	if err != nil {
		s.record("upload_image", err)
		return "", err
	}

	filename := storage.FilenameFor(id, originalFilename)
	if err := s.images.Put(ctx, filename, data); err != nil {
		s.record("upload_image", err)
		if errors.Is(err, types.ErrValidation) {
			return "", err
		}
		if !errors.Is(err, types.ErrStorage) {
			err = fmt.Errorf("%w: unable to save image: %w", types.ErrStorage, err)
		}
		return "", err
	}

	imageURL := storage.URLFor(s.baseURL, filename)
	if err := s.store.UpdateImageURL(ctx, id, imageURL); err != nil {
		s.record("upload_image", err)
		if errors.Is(err, types.ErrNotFound) {
			// The recipe was deleted while the file was being written.
			s.cleanupImage(ctx, id, filename)
		}
		return "", err
	}

	// A recipe owns at most one image file; drop the previous one when the
	// extension changed.
	if existing.HasImage() {
		if previous := storage.FilenameFromURL(existing.ImageURL); previous != filename {
			s.cleanupImage(ctx, id, previous)
		}
	}

	s.record("upload_image", nil)
	if s.metrics != nil {
		s.metrics.ObserveUpload(len(data))
	}
	s.log.WithFields(logrus.Fields{
		"recipe_id": id,
		"filename":  filename,
		"bytes":     len(data),
	}).Info("Image saved")
	return imageURL, nil
}

// GetImage reads a stored image by filename.
func (s *RecipeService) GetImage(ctx context.Context, filename string) (Image, error) {
	data, err := s.images.Get(ctx, filename)
	if err != nil {
		return Image{}, err
	}
	return Image{
		Filename:    filename,
		ContentType: storage.ContentType(filename),
		Data:        data,
	}, nil
}

func (s *RecipeService) cleanupImage(ctx context.Context, id, filename string) CleanupResult {
	result := CleanupResult{Attempted: true, Filename: filename}
	if err := s.images.Delete(ctx, filename); err != nil {
		result.Err = err
		if s.metrics != nil {
			s.metrics.IncCleanupFailure()
		}
		s.log.WithError(err).WithFields(logrus.Fields{
			"recipe_id": id,
			"filename":  filename,
		}).Error("Failed to delete image file")
		return result
	}
	s.log.WithField("filename", filename).Info("Deleted image")
	return result
}

func (s *RecipeService) record(operation string, err error) {
	if s.metrics != nil {
		s.metrics.RecordOperation(operation, err)
	}
}
