package value

import (
	"fmt"
	"strings"
)

// ConflictError reports a type conflict detected during a strict merge: the
// accumulator and the overlay disagree on whether the value at Path is a
// container, and strict mode forbids the silent type-narrowing override.
type ConflictError struct {
	// Source names the fragment whose overlay caused the conflict. Empty for
	// direct Merge calls outside a fold.
	Source string
	// Path is the key path from the root to the conflicting value.
	Path []string
	// Base and Overlay are the two conflicting kinds.
	Base    Kind
	Overlay Kind
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("merge conflict at %q: cannot overlay %s on %s",
		strings.Join(e.Path, ":"), e.Overlay, e.Base)

	if e.Source != "" {
		msg += fmt.Sprintf(" (fragment %q)", e.Source)
	}

	return msg
}

// Merge combines two values under the lenient policy and returns a new
// value; neither input is mutated.
//
// Mappings merge key-wise and recursively: keys present in both sides merge,
// keys present in one side copy over, and the result keeps base key order
// with overlay-only keys appended. Everything else, sequences included, is
// replaced wholesale by the overlay. Sequences are atomic because positional
// element merges have no unambiguous semantics.
func Merge(base, overlay Value) Value {
	v, _ := merge(base, overlay, false, nil)

	return v
}

// MergeStrict is Merge with type mismatches reported instead of absorbed:
// overlaying a container kind with a different kind (or vice versa) returns
// a *ConflictError carrying the offending path and both kinds. A null base
// never conflicts, any overlay may fill it in; a null overlay on a mapping
// or sequence base is a conflict, since it silently erases the subtree.
func MergeStrict(base, overlay Value) (Value, error) {
	return merge(base, overlay, true, nil)
}

func merge(base, overlay Value, strict bool, path []string) (Value, error) {
	switch {
	case base.kind == KindMapping && overlay.kind == KindMapping:
		out := base.m.Clone()

		var mergeErr error

		overlay.m.Range(func(k string, ov Value) bool {
			bv, ok := out.Get(k)
			if !ok {
				out.Set(k, ov)

				return true
			}

			merged, err := merge(bv, ov, strict, append(path, k))
			if err != nil {
				mergeErr = err

				return false
			}

			out.Set(k, merged)

			return true
		})

		if mergeErr != nil {
			return Value{}, mergeErr
		}

		return Map(out), nil
	case base.kind == KindSequence && overlay.kind == KindSequence:
		return overlay, nil
	default:
		if strict && conflicts(base.kind, overlay.kind) {
			return Value{}, &ConflictError{
				Path:    append([]string(nil), path...),
				Base:    base.kind,
				Overlay: overlay.kind,
			}
		}

		return overlay, nil
	}
}

// conflicts reports whether replacing base with overlay is a type mismatch
// under strict mode: one side is a mapping or a sequence and the other is
// not. A null base is always replaceable, but a null overlay still counts
// as non-container against a container base.
func conflicts(base, overlay Kind) bool {
	if base == KindNull {
		return false
	}

	if (base == KindMapping) != (overlay == KindMapping) {
		return true
	}

	return (base == KindSequence) != (overlay == KindSequence)
}
