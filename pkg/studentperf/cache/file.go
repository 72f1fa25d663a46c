package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the cached text in a single file.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore at path. An empty path resolves to
// <user cache dir>/studentperf/<key>.csv.
func NewFileStore(path, key string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cache dir: %w", err)
		}
		if key == "" {
			key = DefaultKey
		}
		path = filepath.Join(dir, "studentperf", key+".csv")
	}
	return &FileStore{Path: path}, nil
}

func (s *FileStore) Get(_ context.Context) (string, bool, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache file: %w", err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(_ context.Context, text string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context) error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove cache file: %w", err)
	}
	return nil
}
