// Package jsoncodec provides the JSON format backend using goccy/go-json.
package jsoncodec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/0xalexb/samla/value"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// Codec implements codec.Codec for JSON documents.
type Codec struct{}

// New creates a new JSON codec instance.
func New() *Codec {
	return &Codec{}
}

// Extensions returns the extensions claimed by the codec.
func (c *Codec) Extensions() []string {
	return []string{"json"}
}

// Decode parses a JSON document into a dynamic value. Object keys are
// ordered lexicographically since JSON decoding goes through Go maps.
// Numbers decode as literals so integers keep their integer identity.
func (c *Codec) Decode(data []byte) (value.Value, error) {
	if len(data) == 0 {
		return value.Value{}, ErrEmptyData
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return value.Value{}, fmt.Errorf("unmarshal error: %w", err)
	}

	v, err := value.FromGo(raw)
	if err != nil {
		return value.Value{}, fmt.Errorf("converting document: %w", err)
	}

	return v, nil
}

// Encode serializes a dynamic value as indented JSON.
func (c *Codec) Encode(v value.Value) ([]byte, error) {
	data, err := json.MarshalIndent(v.Interface(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal error: %w", err)
	}

	return data, nil
}
