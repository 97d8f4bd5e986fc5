package adapter

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/keychain-vault/models"
)

type memoryStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMemoryStorage returns an empty map-backed [Storage]. Directories exist
// implicitly while they contain at least one file.
func NewMemoryStorage() Storage {
	return &memoryStorage{files: make(map[string][]byte)}
}

// Read implements [Storage].
func (m *memoryStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if _, err := CleanPath(path); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return slices.Clone(data), nil
}

// Write implements [Storage].
func (m *memoryStorage) Write(ctx context.Context, path string, data []byte) error {
	if _, err := CleanPath(path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isDir(path) {
		return fmt.Errorf("%w: %s is a directory", ErrIO, path)
	}
	m.files[path] = slices.Clone(data)
	return nil
}

// List implements [Storage].
func (m *memoryStorage) List(ctx context.Context, dir string) ([]models.FileInfo, error) {
	dir, err := CleanDir(dir)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	for name := range m.files {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if first, _, nested := strings.Cut(rest, "/"); nested {
			seen[first] = true
		} else {
			seen[rest] = false
		}
	}

	if len(seen) == 0 && dir != "" {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
	}

	out := make([]models.FileInfo, 0, len(seen))
	for name, isDir := range seen {
		out = append(out, models.FileInfo{Name: name, IsDir: isDir})
	}
	slices.SortFunc(out, func(a, b models.FileInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Remove implements [Storage].
func (m *memoryStorage) Remove(ctx context.Context, path string) error {
	if _, err := CleanPath(path); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[path]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	delete(m.files, path)
	return nil
}

func (m *memoryStorage) isDir(path string) bool {
	prefix := path + "/"
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
