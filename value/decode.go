package value

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Decode extracts the value into target, which must be a pointer. Struct
// fields map by name or by a `mapstructure` tag. String values decode into
// time.Duration fields and encoding.TextUnmarshaler implementations.
func (v Value) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}

	if err := decoder.Decode(v.Interface()); err != nil {
		return fmt.Errorf("decoding value: %w", err)
	}

	return nil
}
