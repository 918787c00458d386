package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes uploaded images to a directory on disk. Filenames are
// generated by the caller and already collision-resistant.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Store writes the bytes to <dir>/<name>. A partially written file is
// removed on error.
func (s *LocalStore) Store(ctx context.Context, name string, r io.Reader) error {
	dst := filepath.Join(s.dir, filepath.Base(name))
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("write file: %w", err)
	}
	return out.Close()
}
