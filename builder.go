package samla

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/0xalexb/samla/codec"
	"github.com/0xalexb/samla/codec/jsoncodec"
	"github.com/0xalexb/samla/codec/luacodec"
	"github.com/0xalexb/samla/codec/tomlcodec"
	"github.com/0xalexb/samla/codec/yamlcodec"
	"github.com/0xalexb/samla/locator"
	"github.com/0xalexb/samla/render"
)

// DefaultRootName is the base name that anchors a fragment at its directory
// instead of under a key named after the file.
const DefaultRootName = "config"

// DefaultPattern is the search pattern used when none is configured: any
// file with a registered codec extension.
const DefaultPattern = "*.{{.Ext}}"

// DefaultRegistry returns a fresh registry holding the built-in backends:
// JSON, YAML, TOML and Lua.
func DefaultRegistry() *codec.Registry {
	return codec.NewRegistry(
		jsoncodec.New(),
		yamlcodec.New(),
		tomlcodec.New(),
		luacodec.New(),
	)
}

// Builder assembles a Finder from options.
type Builder struct {
	options Options
}

// New creates a Builder with the given options applied.
func New(opts ...Option) *Builder {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &Builder{options: options}
}

// extContext is the data available to search name patterns during
// expansion.
type extContext struct {
	Ext string
}

// Build resolves the options into a Finder: it constructs locators for the
// configured search paths, registers extra codecs, and expands the name
// patterns across every registered extension.
func (b *Builder) Build() (*Finder, error) {
	options := b.options

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := options.Registry
	if registry == nil {
		registry = DefaultRegistry()
	} else {
		// The finder owns its registry; the caller's stays untouched.
		registry = registry.Clone()
	}

	for _, c := range options.Codecs {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("registering codec: %w", err)
		}
	}

	locators := append([]locator.Locator(nil), options.Locators...)

	for _, dir := range options.SearchPaths {
		l, err := locator.NewDir(dir)
		if err != nil {
			return nil, fmt.Errorf("search path: %w", err)
		}

		locators = append(locators, l)
	}

	for _, dir := range options.TreePaths {
		l, err := locator.NewDirWalk(dir)
		if err != nil {
			return nil, fmt.Errorf("search tree: %w", err)
		}

		locators = append(locators, l)
	}

	patterns, err := expandPatterns(options.Patterns, registry.Extensions())
	if err != nil {
		return nil, err
	}

	rootNames := options.RootNames
	if len(rootNames) == 0 {
		rootNames = []string{DefaultRootName}
	}

	sortFn := options.Sort
	if sortFn == nil {
		sortFn = strings.Compare
	}

	logger.Debug("codecs registered", slog.Any("extensions", registry.Extensions()))
	logger.Debug("using search patterns", slog.Any("patterns", patterns))

	return &Finder{
		locators:   locators,
		patterns:   patterns,
		excludes:   append([]string(nil), options.Excludes...),
		rootNames:  rootNames,
		registry:   registry,
		renderer:   render.New(options.Context),
		strict:     options.Strict,
		defaultExt: options.DefaultExt,
		sort:       sortFn,
		filter:     options.Filter,
		logger:     logger,
	}, nil
}

// expandPatterns renders each name pattern once per registered extension and
// deduplicates the results, preserving first-seen order. Patterns without
// template actions expand to themselves.
func expandPatterns(patterns, extensions []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}

	if len(extensions) == 0 {
		extensions = []string{""}
	}

	seen := make(map[string]struct{})

	var out []string

	for _, pattern := range patterns {
		for _, ext := range extensions {
			expanded, err := render.Expand(pattern, extContext{Ext: ext})
			if err != nil {
				return nil, err
			}

			if _, ok := seen[expanded]; ok {
				continue
			}

			seen[expanded] = struct{}{}
			out = append(out, expanded)
		}
	}

	return out, nil
}
