// Package yamlcodec provides the YAML format backend using goccy/go-yaml.
// Unlike the map-based backends it preserves document key order.
package yamlcodec

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/samla/value"
)

// ErrNonStringKey is returned when a YAML mapping uses a non-string key.
var ErrNonStringKey = errors.New("mapping key is not a string")

// Codec implements codec.Codec for YAML documents.
type Codec struct{}

// New creates a new YAML codec instance.
func New() *Codec {
	return &Codec{}
}

// Extensions returns the extensions claimed by the codec.
func (c *Codec) Extensions() []string {
	return []string{"yaml", "yml"}
}

// Decode parses a YAML document into a dynamic value, preserving mapping key
// order. Empty documents decode as null.
func (c *Codec) Decode(data []byte) (value.Value, error) {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return value.Value{}, fmt.Errorf("unmarshal error: %w", err)
	}

	return fromYAML(raw)
}

// Encode serializes a dynamic value as YAML, keeping mapping key order.
func (c *Codec) Encode(v value.Value) ([]byte, error) {
	data, err := yaml.Marshal(toYAML(v))
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}

// fromYAML walks the decoded document. Mappings arrive as yaml.MapSlice with
// document order intact; everything else is plain Go data.
func fromYAML(raw any) (value.Value, error) {
	switch t := raw.(type) {
	case yaml.MapSlice:
		m := value.NewMapping()

		for _, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				return value.Value{}, fmt.Errorf("%w: %v", ErrNonStringKey, item.Key)
			}

			v, err := fromYAML(item.Value)
			if err != nil {
				return value.Value{}, err
			}

			m.Set(key, v)
		}

		return value.Map(m), nil
	case []any:
		items := make([]value.Value, len(t))

		for i, raw := range t {
			v, err := fromYAML(raw)
			if err != nil {
				return value.Value{}, err
			}

			items[i] = v
		}

		return value.Sequence(items...), nil
	default:
		v, err := value.FromGo(raw)
		if err != nil {
			return value.Value{}, fmt.Errorf("converting document: %w", err)
		}

		return v, nil
	}
}

func toYAML(v value.Value) any {
	switch v.Kind() {
	case value.KindMapping:
		m, _ := v.AsMapping()
		out := make(yaml.MapSlice, 0, m.Len())

		m.Range(func(k string, item value.Value) bool {
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(item)})

			return true
		})

		return out
	case value.KindSequence:
		seq, _ := v.AsSequence()
		out := make([]any, len(seq))

		for i, item := range seq {
			out[i] = toYAML(item)
		}

		return out
	default:
		return v.Interface()
	}
}
