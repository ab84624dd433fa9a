package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pageza/recipebox/backend/internal/types"
)

// LocalImageStore keeps images as files in a single directory.
type LocalImageStore struct {
	root string
}

// NewLocalImageStore resolves root to an absolute path. The directory is
// created lazily on first write.
func NewLocalImageStore(root string) (*LocalImageStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving image directory %q: %w", root, err)
	}
	return &LocalImageStore{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute storage directory.
func (s *LocalImageStore) Root() string {
	return s.root
}

// Put writes data to <root>/<filename>, overwriting any existing file.
func (s *LocalImageStore) Put(ctx context.Context, filename string, data []byte) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("%w: creating image directory: %w", types.ErrStorage, err)
	}

	// Write to a temp file first so readers never see a partial image.
	tmp, err := os.CreateTemp(s.root, "."+filename+".*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %w", types.ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: writing %s: %w", types.ErrStorage, filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", types.ErrStorage, filename, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", types.ErrStorage, filename, err)
	}
	if err := os.Rename(tmpName, s.path(filename)); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", types.ErrStorage, filename, err)
	}
	return nil
}

// Get reads <root>/<filename>.
func (s *LocalImageStore) Get(ctx context.Context, filename string) ([]byte, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: image %s", types.ErrNotFound, filename)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrStorage, filename, err)
	}
	return data, nil
}

// Delete removes <root>/<filename> if it exists.
func (s *LocalImageStore) Delete(ctx context.Context, filename string) error {
	if err := validateFilename(filename); err != nil {
		return err
	}
	if err := os.Remove(s.path(filename)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: deleting %s: %w", types.ErrStorage, filename, err)
	}
	return nil
}

func (s *LocalImageStore) path(filename string) string {
	return filepath.Join(s.root, filename)
}
