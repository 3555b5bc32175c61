package storage

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// LocalStorage - storage adapter for storing files to local filesystem
type LocalStorage struct {
	Root    string
	BaseURL string
}

// NewLocalStorage - creates a new local storage adapter
func NewLocalStorage(rootPath, baseURL string) (*LocalStorage, error) {
	if rootPath == "" {
		return nil, errors.New("local storage path is required")
	}
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{
		Root:    rootPath,
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalStorage) path(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", errors.New("empty storage key")
	}
	return filepath.Join(s.Root, filepath.FromSlash(clean)), nil
}

// StoreFile writes data under key
func (s *LocalStorage) StoreFile(_ context.Context, key string, data []byte, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Wrap(err, "unable to create storage folder")
	}
	return errors.Wrapf(os.WriteFile(p, data, 0o644), "unable to write %s", key)
}

// GetSignedURL returns the public url of key. Local files do not expire.
func (s *LocalStorage) GetSignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		return "", errors.Wrapf(err, "unable to stat %s", key)
	}
	if s.BaseURL == "" {
		return "file://" + filepath.ToSlash(p), nil
	}
	return s.BaseURL + "/" + strings.TrimLeft(filepath.ToSlash(filepath.Clean("/"+key)), "/"), nil
}

// Handler serves stored files; mount it under the BaseURL path
func (s *LocalStorage) Handler() http.Handler {
	return http.FileServer(http.Dir(s.Root))
}
