package samla

import (
	"errors"
	"fmt"

	"github.com/0xalexb/samla/codec"
	"github.com/0xalexb/samla/value"
)

// ErrPathNotFound is returned when a lookup path is not present in the
// merged configuration.
var ErrPathNotFound = errors.New("path not found")

// Config is the merged configuration: a single root mapping folded from all
// discovered fragments. It is immutable and safe for concurrent use.
type Config struct {
	root     value.Value
	files    []string
	registry *codec.Registry
}

// Value returns the root of the merged tree.
func (c *Config) Value() value.Value {
	return c.root
}

// Files returns the source paths of the fragments that contributed to the
// configuration, in override order.
func (c *Config) Files() []string {
	out := make([]string, len(c.files))
	copy(out, c.files)

	return out
}

// Lookup navigates a colon-separated path into the merged tree, e.g.
// "database:host". An empty path returns the root.
func (c *Config) Lookup(path string) (value.Value, bool) {
	return c.root.Lookup(path)
}

// Decode extracts the whole configuration into target.
func (c *Config) Decode(target any) error {
	return c.root.Decode(target)
}

// DecodePath extracts the subtree at a colon-separated path into target. An
// empty path decodes the whole configuration.
func (c *Config) DecodePath(path string, target any) error {
	v, ok := c.root.Lookup(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}

	return v.Decode(target)
}

// Encode serializes the merged configuration through the codec registered
// for the given extension, e.g. "yaml".
func (c *Config) Encode(ext string) ([]byte, error) {
	codec, err := c.registry.Lookup(ext)
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(c.root)
	if err != nil {
		return nil, fmt.Errorf("encoding as %q: %w", ext, err)
	}

	return data, nil
}
