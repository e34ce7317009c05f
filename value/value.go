package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrUnsupportedType is returned by FromGo when a Go value has no dynamic
// value representation.
var ErrUnsupportedType = errors.New("unsupported type")

// Kind identifies the variant held by a Value.
type Kind uint8

// The closed set of value kinds. Every Value holds exactly one of these.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name as used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// numRep distinguishes the underlying representation of a number. Integers
// and floats compare unequal even when numerically identical, so codecs that
// parse "1" and "1.0" differently produce distinct scalars.
type numRep uint8

const (
	numInt numRep = iota
	numUint
	numFloat
)

// Value is the universal in-memory representation of a parsed configuration
// fragment: a tagged union over null, bool, number, string, sequence and
// mapping. The zero Value is Null. Values are treated as immutable once
// constructed; merge operations build new values instead of mutating inputs.
type Value struct {
	kind Kind
	rep  numRep
	b    bool
	i    int64
	u    uint64
	f    float64
	s    string
	seq  []Value
	m    *Mapping
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns a number value backed by a signed integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, rep: numInt, i: i}
}

// Uint returns a number value backed by an unsigned integer.
func Uint(u uint64) Value {
	return Value{kind: KindNumber, rep: numUint, u: u}
}

// Float returns a number value backed by a float.
func Float(f float64) Value {
	return Value{kind: KindNumber, rep: numFloat, f: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Sequence returns a sequence value holding the given items.
func Sequence(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}

	return Value{kind: KindSequence, seq: items}
}

// Map returns a mapping value. A nil mapping is treated as empty.
func Map(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}

	return Value{kind: KindMapping, m: m}
}

// Kind returns the variant tag of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload. The second result is false when the
// value is not a bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsInt returns the number as a signed integer. Unsigned values convert when
// they fit; floats never convert.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	switch v.rep {
	case numInt:
		return v.i, true
	case numUint:
		if v.u <= math.MaxInt64 {
			return int64(v.u), true
		}
	}

	return 0, false
}

// AsUint returns the number as an unsigned integer. Signed values convert
// when non-negative; floats never convert.
func (v Value) AsUint() (uint64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	switch v.rep {
	case numUint:
		return v.u, true
	case numInt:
		if v.i >= 0 {
			return uint64(v.i), true
		}
	}

	return 0, false
}

// AsFloat returns the number as a float, converting integer representations.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	switch v.rep {
	case numFloat:
		return v.f, true
	case numInt:
		return float64(v.i), true
	default:
		return float64(v.u), true
	}
}

// AsString returns the string payload. The second result is false when the
// value is not a string.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsSequence returns the sequence items. Callers must not mutate the
// returned slice.
func (v Value) AsSequence() ([]Value, bool) {
	return v.seq, v.kind == KindSequence
}

// AsMapping returns the mapping payload. Callers must not mutate the
// returned mapping.
func (v Value) AsMapping() (*Mapping, bool) {
	return v.m, v.kind == KindMapping
}

// Equal reports deep equality. Numbers compare by representation as well as
// magnitude, so Int(1) and Float(1) are not equal. Mapping equality ignores
// key order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		if v.rep != o.rep {
			return false
		}

		switch v.rep {
		case numInt:
			return v.i == o.i
		case numUint:
			return v.u == o.u
		default:
			return v.f == o.f
		}
	case KindString:
		return v.s == o.s
	case KindSequence:
		if len(v.seq) != len(o.seq) {
			return false
		}

		for i := range v.seq {
			if !v.seq[i].Equal(o.seq[i]) {
				return false
			}
		}

		return true
	case KindMapping:
		return v.m.Equal(o.m)
	default:
		return false
	}
}

// Compare orders two values: first by kind, then by payload. Mappings
// compare by sorted key order. The ordering is total and deterministic,
// suitable for sorting heterogeneous sequences.
func (v Value) Compare(o Value) int {
	if v.kind != o.kind {
		return int(v.kind) - int(o.kind)
	}

	switch v.kind {
	case KindNull:
		return 0
	case KindBool:
		return compareBool(v.b, o.b)
	case KindNumber:
		return compareNumber(v, o)
	case KindString:
		return strings.Compare(v.s, o.s)
	case KindSequence:
		for i := 0; i < len(v.seq) && i < len(o.seq); i++ {
			if c := v.seq[i].Compare(o.seq[i]); c != 0 {
				return c
			}
		}

		return len(v.seq) - len(o.seq)
	case KindMapping:
		return compareMapping(v.m, o.m)
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareNumber(a, b Value) int {
	if a.rep != b.rep {
		// Different representations order by magnitude, representation
		// breaking ties so the ordering stays total.
		af, _ := a.AsFloat()
		bf, _ := b.AsFloat()

		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return int(a.rep) - int(b.rep)
		}
	}

	switch a.rep {
	case numInt:
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		}
	case numUint:
		switch {
		case a.u < b.u:
			return -1
		case a.u > b.u:
			return 1
		}
	default:
		switch {
		case a.f < b.f:
			return -1
		case a.f > b.f:
			return 1
		}
	}

	return 0
}

func compareMapping(a, b *Mapping) int {
	ak := a.Keys()
	bk := b.Keys()
	sort.Strings(ak)
	sort.Strings(bk)

	for i := 0; i < len(ak) && i < len(bk); i++ {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			return c
		}

		av, _ := a.Get(ak[i])
		bv, _ := b.Get(bk[i])

		if c := av.Compare(bv); c != 0 {
			return c
		}
	}

	return a.Len() - b.Len()
}

// String renders the value for diagnostics. It is not a serialization
// format; use a codec to produce output.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		switch v.rep {
		case numInt:
			return strconv.FormatInt(v.i, 10)
		case numUint:
			return strconv.FormatUint(v.u, 10)
		default:
			return strconv.FormatFloat(v.f, 'g', -1, 64)
		}
	case KindString:
		return strconv.Quote(v.s)
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = item.String()
		}

		return "[" + strings.Join(parts, ", ") + "]"
	case KindMapping:
		parts := make([]string, 0, v.m.Len())
		v.m.Range(func(k string, item Value) bool {
			parts = append(parts, k+": "+item.String())

			return true
		})

		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "invalid"
	}
}

// Interface converts the value back to plain Go data: nil, bool, int64,
// uint64, float64, string, []any and map[string]any. Mapping key order is
// lost; order-aware consumers should walk the Mapping directly.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		switch v.rep {
		case numInt:
			return v.i
		case numUint:
			return v.u
		default:
			return v.f
		}
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}

		return out
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		v.m.Range(func(k string, item Value) bool {
			out[k] = item.Interface()

			return true
		})

		return out
	default:
		return nil
	}
}

// FromGo converts decoded Go data into a Value. Maps with string keys become
// mappings with lexicographically ordered keys, so codecs that decode through
// unordered Go maps still produce deterministic trees. Slices become
// sequences, time.Time becomes an RFC 3339 string.
func FromGo(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return Uint(uint64(t)), nil
	case uint8:
		return Uint(uint64(t)), nil
	case uint16:
		return Uint(uint64(t)), nil
	case uint32:
		return Uint(uint64(t)), nil
	case uint64:
		return Uint(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return fromNumber(t)
	case time.Time:
		return String(t.Format(time.RFC3339)), nil
	case Value:
		return t, nil
	}

	return fromGoReflect(v)
}

// fromNumber keeps integer identity for codecs that decode numbers as
// literals: integral literals become integers, everything else a float.
func fromNumber(n json.Number) (Value, error) {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return Int(i), nil
	}

	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return Uint(u), nil
	}

	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("parsing number %q: %w", n.String(), err)
	}

	return Float(f), nil
}

// fromGoReflect handles slice and map shapes the type switch cannot
// enumerate, such as []map[string]any produced by TOML array tables.
func fromGoReflect(v any) (Value, error) {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]Value, rv.Len())

		for i := 0; i < rv.Len(); i++ {
			item, err := FromGo(rv.Index(i).Interface())
			if err != nil {
				return Value{}, err
			}

			items[i] = item
		}

		return Sequence(items...), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Value{}, fmt.Errorf("%w: map key %s", ErrUnsupportedType, rv.Type().Key())
		}

		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

		m := NewMapping()

		for _, k := range keys {
			item, err := FromGo(rv.MapIndex(k).Interface())
			if err != nil {
				return Value{}, err
			}

			m.Set(k.String(), item)
		}

		return Map(m), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}
