package tomlcodec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xalexb/samla/codec/tomlcodec"
	"github.com/0xalexb/samla/value"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	src := []byte(`
title = "example"
ratio = 0.5

[database]
host = "localhost"
port = 5432
tags = ["a", "b"]
`)

	v, err := tomlcodec.New().Decode(src)
	require.NoError(t, err)

	got, ok := v.Lookup("title")
	require.True(t, ok)
	require.True(t, got.Equal(value.String("example")))

	got, ok = v.Lookup("ratio")
	require.True(t, ok)
	require.True(t, got.Equal(value.Float(0.5)))

	got, ok = v.Lookup("database:host")
	require.True(t, ok)
	require.True(t, got.Equal(value.String("localhost")))

	got, ok = v.Lookup("database:port")
	require.True(t, ok)

	port, ok := got.AsInt()
	require.True(t, ok)
	require.Equal(t, int64(5432), port)

	got, ok = v.Lookup("database:tags:0")
	require.True(t, ok)
	require.True(t, got.Equal(value.String("a")))
}

func TestDecodeArrayOfTables(t *testing.T) {
	t.Parallel()

	src := []byte(`
[[servers]]
name = "a"

[[servers]]
name = "b"
`)

	v, err := tomlcodec.New().Decode(src)
	require.NoError(t, err)

	got, ok := v.Lookup("servers:1:name")
	require.True(t, ok)
	require.True(t, got.Equal(value.String("b")))
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()

	_, err := tomlcodec.New().Decode([]byte(`key = `))
	require.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	v := value.Map(value.NewMapping().
		Set("name", value.String("samla")).
		Set("server", value.Map(value.NewMapping().Set("host", value.String("h")))))

	data, err := tomlcodec.New().Encode(v)
	require.NoError(t, err)

	back, err := tomlcodec.New().Decode(data)
	require.NoError(t, err)
	require.True(t, v.Equal(back))
}

func TestEncodeRejectsNonMapping(t *testing.T) {
	t.Parallel()

	_, err := tomlcodec.New().Encode(value.Sequence(value.Int(1)))
	require.ErrorIs(t, err, tomlcodec.ErrNotMapping)
}
