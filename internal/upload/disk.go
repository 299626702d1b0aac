package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes avatars under a local directory served at /uploads/.
type DiskStore struct {
	dir string
}

// NewDiskStore ensures the upload directory exists.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the backing directory, for static file serving.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the bytes under a random name and returns the public path.
func (s *DiskStore) Save(_ context.Context, ext, _ string, r io.Reader) (string, error) {
	name := uuid.New().String() + ext
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create avatar file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write avatar file: %w", err)
	}
	return "/uploads/" + name, nil
}
