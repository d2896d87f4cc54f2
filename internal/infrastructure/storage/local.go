// Package storage persists uploaded document files on the local filesystem.
// Files are stored under opaque random keys; the original filename is kept
// only as document metadata.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beaconhr/onboarding-system/internal/core/ports"
)

// LocalStore writes uploads to a single directory and serves them back under
// the /uploads URL prefix.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save streams the upload to disk under a fresh random key. The key keeps the
// original extension so preview content types can be resolved later.
func (s *LocalStore) Save(ctx context.Context, file ports.FileUpload) (ports.FileRef, error) {
	if err := ctx.Err(); err != nil {
		return ports.FileRef{}, err
	}

	key := newFileKey() + filepath.Ext(file.Name)
	path := filepath.Join(s.dir, key)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return ports.FileRef{}, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file.Content); err != nil {
		_ = os.Remove(path)
		return ports.FileRef{}, fmt.Errorf("write upload file: %w", err)
	}

	return ports.FileRef{
		URL:  "/uploads/" + key,
		Key:  key,
		Name: file.Name,
	}, nil
}

func (s *LocalStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

// Path resolves a key to its on-disk location. Keys are generated by Save and
// never contain path separators; Base strips any that arrive anyway.
func (s *LocalStore) Path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

func newFileKey() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("storage: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
