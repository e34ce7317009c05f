// Package tomlcodec provides the TOML format backend using pelletier/go-toml.
package tomlcodec

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/0xalexb/samla/value"
)

// ErrNotMapping is returned by Encode when the value is not a mapping; TOML
// documents are tables at the top level.
var ErrNotMapping = errors.New("top-level value must be a mapping")

// Codec implements codec.Codec for TOML documents.
type Codec struct{}

// New creates a new TOML codec instance.
func New() *Codec {
	return &Codec{}
}

// Extensions returns the extensions claimed by the codec.
func (c *Codec) Extensions() []string {
	return []string{"toml"}
}

// Decode parses a TOML document into a dynamic value. Table keys are ordered
// lexicographically since TOML decoding goes through Go maps; datetimes
// become RFC 3339 strings.
func (c *Codec) Decode(data []byte) (value.Value, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return value.Value{}, fmt.Errorf("unmarshal error: %w", err)
	}

	v, err := value.FromGo(raw)
	if err != nil {
		return value.Value{}, fmt.Errorf("converting document: %w", err)
	}

	return v, nil
}

// Encode serializes a mapping value as a TOML document.
func (c *Codec) Encode(v value.Value) ([]byte, error) {
	if v.Kind() != value.KindMapping {
		return nil, fmt.Errorf("%w, got %s", ErrNotMapping, v.Kind())
	}

	data, err := toml.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}
