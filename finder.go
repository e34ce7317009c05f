package samla

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/0xalexb/samla/codec"
	"github.com/0xalexb/samla/locator"
	"github.com/0xalexb/samla/render"
	"github.com/0xalexb/samla/value"
)

// Finder discovers configuration fragments and folds them into a merged
// configuration. It is immutable after Build and safe for concurrent use.
type Finder struct {
	locators   []locator.Locator
	patterns   []string
	excludes   []string
	rootNames  []string
	registry   *codec.Registry
	renderer   *render.Renderer
	strict     bool
	defaultExt string
	sort       func(a, b string) int
	filter     func(rel string) bool
	logger     *slog.Logger
}

// Files returns the matched files from all locators, deduplicated by
// absolute path, with excludes and the filter hook applied.
func (f *Finder) Files(ctx context.Context) ([]locator.Entry, error) {
	seen := make(map[string]struct{})

	var out []locator.Entry

	for _, l := range f.locators {
		entries, err := l.Locate(ctx, f.patterns)
		if err != nil {
			return nil, fmt.Errorf("locating under %q: %w", l.Root(), err)
		}

		for _, entry := range entries {
			if _, ok := seen[entry.Path]; ok {
				continue
			}

			seen[entry.Path] = struct{}{}

			excluded, err := f.excluded(entry.Rel)
			if err != nil {
				return nil, err
			}

			if excluded {
				continue
			}

			if f.filter != nil && !f.filter(entry.Rel) {
				continue
			}

			f.logger.Debug("found fragment", slog.String("path", entry.Path))

			out = append(out, entry)
		}
	}

	return out, nil
}

// Fragments reads, renders and parses every matched file, derives each
// fragment's anchoring path, and sorts the result by source path so the
// override order is reproducible regardless of discovery order.
func (f *Finder) Fragments(ctx context.Context) ([]value.Fragment, error) {
	entries, err := f.Files(ctx)
	if err != nil {
		return nil, err
	}

	var fragments []value.Fragment

	for _, entry := range entries {
		ext := strings.TrimPrefix(path.Ext(entry.Rel), ".")
		if ext == "" {
			ext = f.defaultExt
		}

		if ext == "" {
			f.logger.Debug("skipping file without extension", slog.String("path", entry.Path))

			continue
		}

		c, err := f.registry.Lookup(ext)
		if err != nil {
			return nil, fmt.Errorf("fragment %q: %w", entry.Rel, err)
		}

		data, err := os.ReadFile(entry.Path)
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", entry.Path, err)
		}

		rendered, err := f.renderer.Render(entry.Rel, data)
		if err != nil {
			return nil, err
		}

		parsed, err := c.Decode(rendered)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", entry.Rel, err)
		}

		fragments = append(fragments, value.Fragment{
			Source: entry.Rel,
			Path:   f.anchorSegments(entry.Rel),
			Value:  parsed,
		})
	}

	sort.SliceStable(fragments, func(i, j int) bool {
		return f.sort(fragments[i].Source, fragments[j].Source) < 0
	})

	return fragments, nil
}

// Config discovers fragments and folds them into the merged configuration.
func (f *Finder) Config(ctx context.Context) (*Config, error) {
	fragments, err := f.Fragments(ctx)
	if err != nil {
		return nil, err
	}

	root, err := value.Fold(fragments, f.strict)
	if err != nil {
		return nil, err
	}

	files := make([]string, len(fragments))
	for i, fragment := range fragments {
		files[i] = fragment.Source
	}

	return &Config{root: root, files: files, registry: f.registry}, nil
}

// anchorSegments derives the anchoring path from a root-relative file path:
// the path minus its extension, split on slashes, with a trailing segment
// equal to a root name dropped. So "config.toml" anchors at the root,
// "db/config.yaml" at "db", and "db/prod.toml" at "db:prod".
func (f *Finder) anchorSegments(rel string) []string {
	trimmed := strings.TrimSuffix(rel, path.Ext(rel))
	segments := strings.Split(trimmed, "/")

	if len(segments) > 0 {
		last := segments[len(segments)-1]

		for _, name := range f.rootNames {
			if last == name {
				segments = segments[:len(segments)-1]

				break
			}
		}
	}

	return segments
}

func (f *Finder) excluded(rel string) (bool, error) {
	for _, pattern := range f.excludes {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		if matched {
			return true, nil
		}
	}

	return false, nil
}
