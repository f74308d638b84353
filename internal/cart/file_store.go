package cart

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage keeps one snapshot file per key inside a directory. It is the
// durable-local-storage analog used by the storefront CLI.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the directory if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (f *FileStorage) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	return data, err
}

func (f *FileStorage) Save(_ context.Context, key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
