package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend keeps one <collection>.json file per collection in a directory.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed and returns a backend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) path(collection string) string {
	return filepath.Join(b.dir, collection+".json")
}

// Load reads the collection file.
func (b *FileBackend) Load(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(b.path(collection))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorageUnavailable, collection, err)
	}
	return data, nil
}

// Replace writes data to a temporary file in the same directory and renames
// it over the collection file.
func (b *FileBackend) Replace(_ context.Context, collection string, data []byte) error {
	if err := b.writeAtomic(collection, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageUnavailable, collection, err)
	}
	return nil
}

func (b *FileBackend) writeAtomic(collection string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, collection+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, b.path(collection)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// Ensure creates an empty array file for each missing collection.
func (b *FileBackend) Ensure(ctx context.Context, collections []string) error {
	for _, name := range collections {
		_, err := os.Stat(b.path(name))
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: stat %s: %v", ErrStorageUnavailable, name, err)
		}
		if err := b.Replace(ctx, name, []byte("[]")); err != nil {
			return err
		}
	}
	return nil
}
