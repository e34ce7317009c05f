// Package locator finds configuration files under search roots.
//
// A Locator matches glob patterns (doublestar syntax, so `**` crosses
// directory boundaries) against files below its root and reports each match
// with its root-relative path. DirLocator looks only at the root directory
// itself; DirWalkLocator descends the whole tree.
package locator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotDirectory is returned when a locator root is not a directory.
var ErrNotDirectory = errors.New("root is not a directory")

// Entry is one discovered file.
type Entry struct {
	// Path is the absolute path of the file.
	Path string
	// Rel is the path relative to the locator root, slash-separated.
	Rel string
}

// Locator finds files under a root that match glob patterns.
type Locator interface {
	// Root returns the absolute root the locator searches under.
	Root() string
	// Locate returns entries matching any of the patterns. The result order
	// is deterministic for a given tree.
	Locate(ctx context.Context, patterns []string) ([]Entry, error)
}

// resolveRoot cleans and absolutizes a root path and verifies it is a
// directory.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", root, err)
	}

	stat, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat root %q: %w", abs, err)
	}

	if !stat.IsDir() {
		return "", fmt.Errorf("root %q: %w", abs, ErrNotDirectory)
	}

	return abs, nil
}
