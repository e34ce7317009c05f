package locator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// DirLocator matches files directly inside a single directory, without
// descending into subdirectories.
type DirLocator struct {
	root string
}

// NewDir creates a DirLocator for the given directory.
func NewDir(root string) (*DirLocator, error) {
	abs, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	return &DirLocator{root: abs}, nil
}

// Root returns the absolute root directory.
func (l *DirLocator) Root() string {
	return l.root
}

// Locate returns directory entries whose name matches any pattern, in
// directory listing order (lexicographic on most platforms).
func (l *DirLocator) Locate(ctx context.Context, patterns []string) ([]Entry, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", l.root, err)
	}

	var out []Entry

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() {
			continue
		}

		matched, err := matchAny(patterns, entry.Name())
		if err != nil {
			return nil, err
		}

		if matched {
			out = append(out, Entry{
				Path: filepath.Join(l.root, entry.Name()),
				Rel:  entry.Name(),
			})
		}
	}

	return out, nil
}

// matchAny reports whether name matches any of the doublestar patterns.
func matchAny(patterns []string, name string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}

		if matched {
			return true, nil
		}
	}

	return false, nil
}
