package value

import (
	"strconv"
	"strings"
)

// Lookup navigates a colon-separated path into the value and returns the
// value found there. Each path element selects a mapping key, or an element
// index when the current value is a sequence and the element parses as a
// non-negative integer:
//
//	"database:host"     -> mapping key "database", then key "host"
//	"servers:0:address" -> key "servers", element 0, key "address"
//	""                  -> the value itself
//
// The second result is false when any element cannot be resolved.
func (v Value) Lookup(path string) (Value, bool) {
	if path == "" {
		return v, true
	}

	current := v

	for _, element := range strings.Split(path, ":") {
		next, ok := current.step(element)
		if !ok {
			return Value{}, false
		}

		current = next
	}

	return current, true
}

func (v Value) step(element string) (Value, bool) {
	switch v.kind {
	case KindMapping:
		return v.m.Get(element)
	case KindSequence:
		i, err := strconv.Atoi(element)
		if err != nil || i < 0 || i >= len(v.seq) {
			return Value{}, false
		}

		return v.seq[i], true
	default:
		return Value{}, false
	}
}
