package locator

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
)

// DirWalkLocator recursively walks a directory tree. Patterns match against
// the root-relative path and, for convenience, against the bare file name,
// so both "db/*.toml" and "config.*" behave as expected at any depth.
type DirWalkLocator struct {
	root string
}

// NewDirWalk creates a DirWalkLocator for the given directory.
func NewDirWalk(root string) (*DirWalkLocator, error) {
	abs, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	return &DirWalkLocator{root: abs}, nil
}

// Root returns the absolute root directory.
func (l *DirWalkLocator) Root() string {
	return l.root
}

// Locate walks the tree and returns matching entries in walk order, which is
// lexicographic within each directory.
func (l *DirWalkLocator) Locate(ctx context.Context, patterns []string) ([]Entry, error) {
	var out []Entry

	err := filepath.WalkDir(l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return fmt.Errorf("relativizing %q: %w", p, err)
		}

		rel = filepath.ToSlash(rel)

		matched, err := matchAny(patterns, rel)
		if err != nil {
			return err
		}

		if !matched {
			matched, err = matchAny(patterns, path.Base(rel))
			if err != nil {
				return err
			}
		}

		if matched {
			out = append(out, Entry{Path: p, Rel: rel})
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", l.root, err)
	}

	return out, nil
}
