package adapter

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/keychain-vault/internal/logger"
	"github.com/MKhiriev/keychain-vault/models"
)

const tempPrefix = ".tmp-"

type fsStorage struct {
	root   string
	logger *logger.Logger
}

// NewFSStorage returns a [Storage] rooted at the directory root, creating it
// if needed.
func NewFSStorage(root string, log *logger.Logger) (Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty root", ErrInvalidPath)
	}
	if log == nil {
		log = logger.Nop()
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create root: %w", ErrIO, err)
	}
	return &fsStorage{root: root, logger: log}, nil
}

func (s *fsStorage) abs(p string) string {
	return filepath.Join(s.root, filepath.FromSlash(p))
}

// Read implements [Storage].
func (s *fsStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if _, err := CleanPath(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.abs(path))
	if err != nil {
		return nil, mapFSError("read", path, err)
	}
	return data, nil
}

// Write implements [Storage]. The data is written to a temp file in the
// target directory and renamed over the destination.
func (s *fsStorage) Write(ctx context.Context, path string, data []byte) error {
	if _, err := CleanPath(path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dst := s.abs(path)
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return mapFSError("mkdir", path, err)
	}

	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return mapFSError("create temp", path, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, dst)
	}
	if err != nil {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.logger.Warn().Err(rmErr).Str("tmp", tmpName).Msg("failed to remove temp file")
		}
		return mapFSError("write", path, err)
	}
	return nil
}

// List implements [Storage]. Temp files of in-flight writes are hidden.
func (s *fsStorage) List(ctx context.Context, dir string) ([]models.FileInfo, error) {
	dir, err := CleanDir(dir)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.abs(dir))
	if err != nil {
		return nil, mapFSError("list", dir, err)
	}

	out := make([]models.FileInfo, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), tempPrefix) {
			continue
		}
		out = append(out, models.FileInfo{Name: e.Name(), IsDir: e.IsDir()})
	}
	return out, nil
}

// Remove implements [Storage].
func (s *fsStorage) Remove(ctx context.Context, path string) error {
	if _, err := CleanPath(path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(s.abs(path)); err != nil {
		return mapFSError("remove", path, err)
	}
	return nil
}

func mapFSError(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
