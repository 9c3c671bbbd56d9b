package adapter

import (
	"context"
	"fmt"
	"path/filepath"

	m "classdoc.dev/pkg/classdoc/internal/model"
)

// DocletStore loads and saves doclet documents.
type DocletStore interface {
	Load(ctx context.Context, path m.Path) ([]m.Doclet, error)
	Save(ctx context.Context, path m.Path, records []m.Doclet) error
}

// LocalDocletStore reads and writes doclet files through a SourceFSAdapter, choosing the
// codec from the file extension.
type LocalDocletStore struct {
	fs SourceFSAdapter
}

// NewDocletStore creates a store backed by fs.
func NewDocletStore(fs SourceFSAdapter) *LocalDocletStore {
	return &LocalDocletStore{fs: fs}
}

// Load decodes the records of path in discovery order.
func (s *LocalDocletStore) Load(ctx context.Context, path m.Path) ([]m.Doclet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records, err := DecodeDoclets(format, data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return records, nil
}

// Save encodes records into path, creating its directory when needed.
func (s *LocalDocletStore) Save(ctx context.Context, path m.Path, records []m.Doclet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := EncodeDoclets(format, records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := s.fs.MkdirAll(m.Path(dir)); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := s.fs.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
