// Package storage persists uploaded documents as opaque write-once blobs
// addressed by generated storage keys.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/legal-request-service/internal/config"
)

// ErrNotFound is returned when a storage key has no blob behind it.
var ErrNotFound = errors.New("blob not found")

// Store saves and retrieves document blobs.
type Store interface {
	Save(name string, r io.Reader) (key string, err error)
	Open(key string) (io.ReadCloser, error)
	FileName(key string) string
}

type localStore struct {
	root    string
	maxSize int64
}

// NewLocalStore creates a disk-backed store rooted at cfg.RootDir.
func NewLocalStore(cfg config.StorageConfig) (Store, error) {
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStore{root: cfg.RootDir, maxSize: cfg.MaxUploadBytes}, nil
}

// Save writes the blob and returns its key. The key embeds a sanitized copy
// of the original file name so downloads keep a sensible name.
func (s *localStore) Save(name string, r io.Reader) (string, error) {
	key := uuid.NewString() + "_" + sanitizeName(name)
	dst, err := os.OpenFile(filepath.Join(s.root, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	reader := io.Reader(r)
	if s.maxSize > 0 {
		reader = io.LimitReader(r, s.maxSize+1)
	}
	written, err := io.Copy(dst, reader)
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}
	if s.maxSize > 0 && written > s.maxSize {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("blob exceeds %d bytes", s.maxSize)
	}
	return key, nil
}

// Open returns a reader for the stored blob.
func (s *localStore) Open(key string) (io.ReadCloser, error) {
	clean := filepath.Base(key)
	if clean != key || key == "" {
		return nil, ErrNotFound
	}
	f, err := os.Open(filepath.Join(s.root, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// FileName recovers the original file name embedded in a storage key.
func (s *localStore) FileName(key string) string {
	if idx := strings.Index(key, "_"); idx >= 0 && idx+1 < len(key) {
		return key[idx+1:]
	}
	return key
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '-'
	}, name)
	if name == "" || name == "." {
		return "document"
	}
	return name
}
