// Package codec defines the format backend interface and the registry that
// selects a backend by file extension.
//
// The registry is an explicit value handed to the builder, not a process-wide
// table: two builders can carry different codec sets without interfering, and
// lookups for unregistered extensions fail deterministically.
package codec

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/0xalexb/samla/value"
)

// ErrUnknownExtension is returned by Lookup when no codec claims the
// extension.
var ErrUnknownExtension = errors.New("no codec registered for extension")

// ErrDuplicateExtension is returned by Register when a codec claims an
// extension that is already taken.
var ErrDuplicateExtension = errors.New("extension already registered")

// Codec translates between serialized fragment bytes and dynamic values.
type Codec interface {
	// Extensions returns the file extensions this codec claims, without the
	// leading dot.
	Extensions() []string
	// Decode parses fragment bytes into a value.
	Decode(data []byte) (value.Value, error)
	// Encode serializes a value back to the codec's format.
	Encode(v value.Value) ([]byte, error)
}

// Registry maps file extensions to codecs. Extensions are matched
// case-insensitively; registration order is preserved so pattern expansion
// stays deterministic.
type Registry struct {
	byExt map[string]Codec
	exts  []string
}

// NewRegistry returns a registry holding the given codecs. It panics on
// duplicate extensions, which can only happen through a programming error at
// construction time; use Register to handle duplicates gracefully.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{byExt: make(map[string]Codec)}

	for _, c := range codecs {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}

	return r
}

// Register adds a codec for every extension it claims.
func (r *Registry) Register(c Codec) error {
	if r.byExt == nil {
		r.byExt = make(map[string]Codec)
	}

	for _, ext := range c.Extensions() {
		ext = normalize(ext)

		if _, ok := r.byExt[ext]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateExtension, ext)
		}

		r.byExt[ext] = c
		r.exts = append(r.exts, ext)
	}

	return nil
}

// Clone returns a registry holding the same codecs. Registering into the
// clone does not affect the original.
func (r *Registry) Clone() *Registry {
	return &Registry{
		byExt: maps.Clone(r.byExt),
		exts:  append([]string(nil), r.exts...),
	}
}

// Lookup returns the codec registered for ext.
func (r *Registry) Lookup(ext string) (Codec, error) {
	c, ok := r.byExt[normalize(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}

	return c, nil
}

// Extensions returns all registered extensions in registration order.
func (r *Registry) Extensions() []string {
	out := make([]string, len(r.exts))
	copy(out, r.exts)

	return out
}

func normalize(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
