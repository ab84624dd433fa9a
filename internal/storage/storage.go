package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/types"
)

// ImageStore persists recipe images keyed by their derived filename.
type ImageStore interface {
	// Put writes data under filename, replacing any existing object.
	Put(ctx context.Context, filename string, data []byte) error
	// Get returns the stored bytes or an error wrapping types.ErrNotFound.
	Get(ctx context.Context, filename string) ([]byte, error)
	// Delete removes filename. Deleting a missing file is not an error.
	Delete(ctx context.Context, filename string) error
}

// validateFilename rejects names that could escape the storage root.
func validateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") ||
		strings.ContainsRune(filename, 0) {
		return fmt.Errorf("%w: invalid image filename %q", types.ErrValidation, filename)
	}
	return nil
}

// NewFromConfig builds the image store selected by cfg.ImageStorage.
func NewFromConfig(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	switch cfg.ImageStorage {
	case config.StorageS3:
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3ImageStoreFromConfig(s3cfg), nil
	case config.StorageLocal, "":
		return NewLocalImageStore(cfg.ImageDirectory)
	default:
		return nil, fmt.Errorf("unknown image storage backend %q", cfg.ImageStorage)
	}
}
