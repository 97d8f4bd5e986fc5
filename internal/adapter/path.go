package adapter

import (
	"fmt"
	"strings"
)

// CleanPath validates a file path and returns it unchanged.
func CleanPath(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	return p, checkSegments(p)
}

// CleanDir validates a directory path. The root is "" and a trailing slash
// is dropped.
func CleanDir(dir string) (string, error) {
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		return "", nil
	}
	return dir, checkSegments(dir)
}

func checkSegments(p string) error {
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return nil
}
