package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FSStore mirrors the object layout under a local directory.
type FSStore struct {
	base string
}

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		return nil, errors.New("fs storage requires a base path")
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}

	return &FSStore{base: abs}, nil
}

func openFS(_ context.Context, cfg Config) (ObjectStore, error) {
	return NewFSStore(cfg.BasePath)
}

// Put writes to a temp file in the target directory and renames it into
// place, so readers never see a half-written object.
func (s *FSStore) Put(ctx context.Context, key string, body io.ReadSeeker, _ Metadata) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dst)
}

func (s *FSStore) Location(key string) string {
	return "file://" + filepath.ToSlash(filepath.Join(s.base, filepath.FromSlash(key)))
}

func (s *FSStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.base, clean), nil
}
