package value

import (
	"errors"
	"fmt"
)

// ErrMalformedPath is returned by Fold when a fragment's anchoring path
// cannot be used: a segment is empty, or a root-anchored fragment holds a
// non-mapping value that cannot merge into the root mapping.
var ErrMalformedPath = errors.New("malformed fragment path")

// Fragment is one discovered, parsed configuration source: the value parsed
// from a file together with the anchoring path derived from the file's
// location. Path segments name the mapping keys under which Value is placed
// in the final tree; an empty Path anchors the fragment at the root.
type Fragment struct {
	// Source identifies the originating file for diagnostics. It does not
	// affect folding.
	Source string
	Path   []string
	Value  Value
}

// Fold merges fragments, in order, into a single root mapping. Each
// fragment's value is wrapped in a mapping skeleton keyed by its path
// segments and merged onto the accumulator as the overlay, so fragments
// appearing later in the sequence win conflicts at the same path.
//
// With strict set, a type conflict aborts the fold and returns the
// *ConflictError naming the fragment, the key path and both kinds; no
// partial tree is returned. Without strict, Fold only fails on malformed
// fragment paths, which are rejected before any merging happens.
//
// Fold is pure: it never mutates its input and owns its accumulator, so
// callers may share fragment slices freely.
func Fold(fragments []Fragment, strict bool) (Value, error) {
	for _, f := range fragments {
		if err := checkAnchoring(f); err != nil {
			return Value{}, err
		}
	}

	root := Map(NewMapping())

	for _, f := range fragments {
		if f.Value.IsNull() {
			// An empty file parses to null; it contributes nothing wherever
			// it is anchored. Explicit null keys inside a mapping fragment
			// still flow through the merge.
			continue
		}

		merged, err := merge(root, anchor(f), strict, nil)
		if err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				conflict.Source = f.Source
			}

			return Value{}, err
		}

		root = merged
	}

	return root, nil
}

// anchor wraps a fragment's value in nested single-key mappings, innermost
// segment first, producing the overlay skeleton for the fold.
func anchor(f Fragment) Value {
	overlay := f.Value

	for i := len(f.Path) - 1; i >= 0; i-- {
		overlay = Map(NewMapping().Set(f.Path[i], overlay))
	}

	return overlay
}

func checkAnchoring(f Fragment) error {
	for _, segment := range f.Path {
		if segment == "" {
			return fmt.Errorf("fragment %q: %w: empty segment", f.Source, ErrMalformedPath)
		}
	}

	if len(f.Path) == 0 && f.Value.Kind() != KindMapping && !f.Value.IsNull() {
		return fmt.Errorf("fragment %q: %w: root fragment must be a mapping, got %s",
			f.Source, ErrMalformedPath, f.Value.Kind())
	}

	return nil
}
