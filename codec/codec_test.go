package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xalexb/samla/codec"
	"github.com/0xalexb/samla/value"
)

type fakeCodec struct {
	exts []string
}

func (f *fakeCodec) Extensions() []string {
	return f.exts
}

func (f *fakeCodec) Decode([]byte) (value.Value, error) {
	return value.Null(), nil
}

func (f *fakeCodec) Encode(value.Value) ([]byte, error) {
	return nil, nil
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	c := &fakeCodec{exts: []string{"yaml", "yml"}}
	registry := codec.NewRegistry(c)

	for _, ext := range []string{"yaml", "yml", ".yaml", "YAML"} {
		got, err := registry.Lookup(ext)
		require.NoError(t, err, "extension %q", ext)
		require.Same(t, c, got)
	}

	_, err := registry.Lookup("toml")
	require.ErrorIs(t, err, codec.ErrUnknownExtension)
}

func TestRegistryDuplicate(t *testing.T) {
	t.Parallel()

	registry := codec.NewRegistry(&fakeCodec{exts: []string{"json"}})

	err := registry.Register(&fakeCodec{exts: []string{"json"}})
	require.ErrorIs(t, err, codec.ErrDuplicateExtension)
}

func TestRegistryExtensionsOrder(t *testing.T) {
	t.Parallel()

	registry := codec.NewRegistry(
		&fakeCodec{exts: []string{"json"}},
		&fakeCodec{exts: []string{"yaml", "yml"}},
		&fakeCodec{exts: []string{"toml"}},
	)

	require.Equal(t, []string{"json", "yaml", "yml", "toml"}, registry.Extensions())
}

func TestRegistryClone(t *testing.T) {
	t.Parallel()

	registry := codec.NewRegistry(&fakeCodec{exts: []string{"json"}})

	clone := registry.Clone()
	require.NoError(t, clone.Register(&fakeCodec{exts: []string{"toml"}}))

	require.Equal(t, []string{"json", "toml"}, clone.Extensions())
	require.Equal(t, []string{"json"}, registry.Extensions())

	_, err := registry.Lookup("toml")
	require.ErrorIs(t, err, codec.ErrUnknownExtension)
}

func TestZeroRegistryRegister(t *testing.T) {
	t.Parallel()

	var registry codec.Registry

	require.NoError(t, registry.Register(&fakeCodec{exts: []string{"lua"}}))

	_, err := registry.Lookup("lua")
	require.NoError(t, err)
}
