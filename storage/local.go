package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage - хранилище в каталоге на диске
type LocalStorage struct {
	basePath  string
	urlPrefix string
}

func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	return &LocalStorage{basePath: absPath, urlPrefix: urlPrefix}, nil
}

// fullPath не дает ключу выйти за пределы basePath
func (s *LocalStorage) fullPath(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	clean = strings.TrimPrefix(clean, string(os.PathSeparator))
	if clean == "" || clean == "." {
		return "", fmt.Errorf("invalid key: %q", key)
	}
	return filepath.Join(s.basePath, clean), nil
}

// Write пишет во временный файл и атомарно переименовывает его
func (s *LocalStorage) Write(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	p, err := s.fullPath(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, p); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	success = true
	return nil
}

func (s *LocalStorage) Read(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.fullPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	p, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Exists(_ context.Context, key string) (bool, error) {
	p, err := s.fullPath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

func (s *LocalStorage) URL(key string) string {
	return s.urlPrefix + strings.TrimPrefix(path.Clean("/"+key), "/")
}

var _ Storage = (*LocalStorage)(nil)
