// Package luacodec provides the Lua-table format backend using gopher-lua.
//
// A fragment is a Lua chunk that returns a table:
//
//	return {
//	  host = "localhost",
//	  ports = { 8080, 8081 },
//	}
//
// Chunks run in a fresh interpreter with only the base, table, string and
// math libraries available; there is no filesystem or OS access.
package luacodec

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/0xalexb/samla/value"
)

// ErrNoTable is returned when the chunk does not return a table.
var ErrNoTable = errors.New("chunk must return a table")

// ErrBadKey is returned when a table mixes non-string keys into its hash
// part.
var ErrBadKey = errors.New("table key is not a string")

// ErrUnsupported is returned for Lua values with no dynamic value
// representation, such as functions and userdata.
var ErrUnsupported = errors.New("unsupported lua value")

// Codec implements codec.Codec for Lua table fragments.
type Codec struct{}

// New creates a new Lua codec instance.
func New() *Codec {
	return &Codec{}
}

// Extensions returns the extensions claimed by the codec.
func (c *Codec) Extensions() []string {
	return []string{"lua"}
}

// Decode evaluates the chunk and converts the returned table. Tables whose
// keys are exactly 1..n convert to sequences; all other tables convert to
// mappings with lexicographically ordered keys, since Lua table iteration
// order is unspecified. Integral numbers decode as integers.
func (c *Codec) Decode(data []byte) (value.Value, error) {
	state, err := newState()
	if err != nil {
		return value.Value{}, err
	}
	defer state.Close()

	if err := state.DoString(string(data)); err != nil {
		return value.Value{}, fmt.Errorf("evaluating chunk: %w", err)
	}

	ret := state.Get(-1)

	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return value.Value{}, fmt.Errorf("%w, got %s", ErrNoTable, ret.Type())
	}

	return fromLua(tbl)
}

// Encode serializes a dynamic value as a chunk returning the equivalent
// table literal. Null entries are written as nil, which Lua drops on load.
func (c *Codec) Encode(v value.Value) ([]byte, error) {
	var b strings.Builder

	b.WriteString("return ")

	if err := writeLua(&b, v, 0); err != nil {
		return nil, err
	}

	b.WriteString("\n")

	return []byte(b.String()), nil
}

func newState() (*lua.LState, error) {
	state := lua.NewState(lua.Options{SkipOpenLibs: true})

	libs := []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}

	for _, lib := range libs {
		err := state.CallByParam(lua.P{
			Fn:      state.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name))
		if err != nil {
			state.Close()

			return nil, fmt.Errorf("opening %s library: %w", lib.name, err)
		}
	}

	return state, nil
}

func fromLua(lv lua.LValue) (value.Value, error) {
	switch t := lv.(type) {
	case *lua.LNilType:
		return value.Null(), nil
	case lua.LBool:
		return value.Bool(bool(t)), nil
	case lua.LNumber:
		f := float64(t)
		if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < math.MaxInt64 {
			return value.Int(int64(f)), nil
		}

		return value.Float(f), nil
	case lua.LString:
		return value.String(string(t)), nil
	case *lua.LTable:
		return fromLuaTable(t)
	default:
		return value.Value{}, fmt.Errorf("%w: %s", ErrUnsupported, lv.Type())
	}
}

func fromLuaTable(tbl *lua.LTable) (value.Value, error) {
	arrayLen := tbl.Len()
	total := 0

	tbl.ForEach(func(lua.LValue, lua.LValue) {
		total++
	})

	if total == arrayLen && arrayLen > 0 {
		items := make([]value.Value, arrayLen)

		for i := 1; i <= arrayLen; i++ {
			item, err := fromLua(tbl.RawGetInt(i))
			if err != nil {
				return value.Value{}, err
			}

			items[i-1] = item
		}

		return value.Sequence(items...), nil
	}

	type entry struct {
		key string
		val lua.LValue
	}

	entries := make([]entry, 0, total)

	var keyErr error

	tbl.ForEach(func(k, v lua.LValue) {
		s, ok := k.(lua.LString)
		if !ok {
			keyErr = fmt.Errorf("%w: %s", ErrBadKey, k.Type())

			return
		}

		entries = append(entries, entry{key: string(s), val: v})
	})

	if keyErr != nil {
		return value.Value{}, keyErr
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	m := value.NewMapping()

	for _, e := range entries {
		item, err := fromLua(e.val)
		if err != nil {
			return value.Value{}, err
		}

		m.Set(e.key, item)
	}

	return value.Map(m), nil
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var keywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "if": true,
	"in": true, "local": true, "nil": true, "not": true, "or": true,
	"repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

func writeLua(b *strings.Builder, v value.Value, depth int) error {
	indent := strings.Repeat("  ", depth+1)

	switch v.Kind() {
	case value.KindNull:
		b.WriteString("nil")
	case value.KindBool, value.KindNumber:
		b.WriteString(v.String())
	case value.KindString:
		s, _ := v.AsString()
		b.WriteString(strconv.Quote(s))
	case value.KindSequence:
		seq, _ := v.AsSequence()
		if len(seq) == 0 {
			b.WriteString("{}")

			return nil
		}

		b.WriteString("{\n")

		for _, item := range seq {
			b.WriteString(indent)

			if err := writeLua(b, item, depth+1); err != nil {
				return err
			}

			b.WriteString(",\n")
		}

		b.WriteString(strings.Repeat("  ", depth) + "}")
	case value.KindMapping:
		m, _ := v.AsMapping()
		if m.Len() == 0 {
			b.WriteString("{}")

			return nil
		}

		b.WriteString("{\n")

		var writeErr error

		m.Range(func(k string, item value.Value) bool {
			b.WriteString(indent)

			if identifier.MatchString(k) && !keywords[k] {
				b.WriteString(k)
			} else {
				b.WriteString("[" + strconv.Quote(k) + "]")
			}

			b.WriteString(" = ")

			if writeErr = writeLua(b, item, depth+1); writeErr != nil {
				return false
			}

			b.WriteString(",\n")

			return true
		})

		if writeErr != nil {
			return writeErr
		}

		b.WriteString(strings.Repeat("  ", depth) + "}")
	}

	return nil
}
