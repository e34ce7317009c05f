package samla

import (
	"log/slog"

	"github.com/0xalexb/samla/codec"
	"github.com/0xalexb/samla/locator"
)

// Options holds configuration settings for a Builder.
type Options struct {
	// Locators are explicit locators, searched in addition to SearchPaths
	// and TreePaths.
	Locators []locator.Locator
	// SearchPaths are directories searched non-recursively.
	SearchPaths []string
	// TreePaths are directories searched recursively.
	TreePaths []string
	// Patterns are search name patterns; "{{.Ext}}" expands to every
	// registered codec extension. Defaults to "*.{{.Ext}}".
	Patterns []string
	// Excludes are glob patterns matched against root-relative paths;
	// matching files are dropped after discovery.
	Excludes []string
	// RootNames are base names that anchor a fragment at its directory
	// instead of under a key named after the file. Defaults to "config".
	RootNames []string
	// Context is the key-value binding available to every fragment's
	// template pass.
	Context map[string]string
	// Strict makes type conflicts during merging fail the build instead of
	// silently overriding.
	Strict bool
	// Registry supplies the format backends. Defaults to DefaultRegistry().
	Registry *codec.Registry
	// Codecs are registered into the registry at build time.
	Codecs []codec.Codec
	// DefaultExt is assumed for discovered files without an extension. When
	// empty such files are skipped.
	DefaultExt string
	// Sort compares fragment source paths to fix the override order.
	// Defaults to lexicographic.
	Sort func(a, b string) int
	// Filter drops discovered files when it returns false. Nil keeps all.
	Filter func(rel string) bool
	// Logger receives debug logs during discovery. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithSearchPath adds directories that are searched non-recursively.
func WithSearchPath(dirs ...string) Option {
	return func(opts *Options) {
		opts.SearchPaths = append(opts.SearchPaths, dirs...)
	}
}

// WithSearchTree adds directories that are searched recursively.
func WithSearchTree(dirs ...string) Option {
	return func(opts *Options) {
		opts.TreePaths = append(opts.TreePaths, dirs...)
	}
}

// WithCurrentPath adds the working directory as a non-recursive search path.
func WithCurrentPath() Option {
	return WithSearchPath(".")
}

// WithLocator adds custom locators.
func WithLocator(locators ...locator.Locator) Option {
	return func(opts *Options) {
		opts.Locators = append(opts.Locators, locators...)
	}
}

// WithPattern adds search name patterns. A pattern may reference "{{.Ext}}"
// to expand across every registered extension, e.g. "config.{{.Ext}}".
func WithPattern(patterns ...string) Option {
	return func(opts *Options) {
		opts.Patterns = append(opts.Patterns, patterns...)
	}
}

// WithExclude adds glob patterns that drop matching files after discovery.
func WithExclude(patterns ...string) Option {
	return func(opts *Options) {
		opts.Excludes = append(opts.Excludes, patterns...)
	}
}

// WithRootName sets the base names that anchor a fragment at its directory.
func WithRootName(names ...string) Option {
	return func(opts *Options) {
		opts.RootNames = append(opts.RootNames, names...)
	}
}

// WithTemplateContext sets the key-value bindings available to every
// fragment's template pass.
func WithTemplateContext(context map[string]string) Option {
	return func(opts *Options) {
		opts.Context = context
	}
}

// WithStrict makes type conflicts during merging fail the build.
func WithStrict() Option {
	return func(opts *Options) {
		opts.Strict = true
	}
}

// WithRegistry replaces the default codec registry.
func WithRegistry(registry *codec.Registry) Option {
	return func(opts *Options) {
		opts.Registry = registry
	}
}

// WithCodec registers additional format backends.
func WithCodec(codecs ...codec.Codec) Option {
	return func(opts *Options) {
		opts.Codecs = append(opts.Codecs, codecs...)
	}
}

// WithDefaultExtension sets the extension assumed for files without one.
func WithDefaultExtension(ext string) Option {
	return func(opts *Options) {
		opts.DefaultExt = ext
	}
}

// WithSort replaces the lexicographic fragment ordering. The comparator
// receives source paths and follows the cmp.Compare contract.
func WithSort(cmp func(a, b string) int) Option {
	return func(opts *Options) {
		opts.Sort = cmp
	}
}

// WithFilter drops discovered files for which f returns false. Paths are
// root-relative.
func WithFilter(f func(rel string) bool) Option {
	return func(opts *Options) {
		opts.Filter = f
	}
}

// WithLogger sets the logger used for discovery debug logs.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}
