package samla

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xalexb/samla/codec"
	"github.com/0xalexb/samla/codec/jsoncodec"
	"github.com/0xalexb/samla/codec/tomlcodec"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	registry := DefaultRegistry()

	require.Equal(t, []string{"json", "yaml", "yml", "toml", "lua"}, registry.Extensions())

	// Each call returns an independent registry.
	other := DefaultRegistry()
	require.NotSame(t, registry, other)
}

func TestExpandPatterns(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		patterns   []string
		extensions []string
		expected   []string
	}{
		{
			name:       "extension binding expands per extension",
			patterns:   []string{"config.{{.Ext}}"},
			extensions: []string{"json", "yaml"},
			expected:   []string{"config.json", "config.yaml"},
		},
		{
			name:       "literal patterns deduplicate",
			patterns:   []string{"*.toml"},
			extensions: []string{"json", "yaml"},
			expected:   []string{"*.toml"},
		},
		{
			name:       "defaults to any registered extension",
			patterns:   nil,
			extensions: []string{"toml"},
			expected:   []string{"*.toml"},
		},
		{
			name:       "mixed",
			patterns:   []string{"app.{{.Ext}}", "override.yaml"},
			extensions: []string{"yaml", "toml"},
			expected:   []string{"app.yaml", "app.toml", "override.yaml"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, err := expandPatterns(testCase.patterns, testCase.extensions)
			require.NoError(t, err)
			require.Equal(t, testCase.expected, out)
		})
	}
}

func TestExpandPatternsInvalid(t *testing.T) {
	t.Parallel()

	_, err := expandPatterns([]string{"{{.Unclosed"}, []string{"json"})
	require.Error(t, err)
}

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	finder, err := New(WithSearchPath(t.TempDir())).Build()
	require.NoError(t, err)
	require.NotNil(t, finder)
	require.Equal(t, []string{DefaultRootName}, finder.rootNames)
	require.NotNil(t, finder.sort)
	require.NotNil(t, finder.logger)
}

func TestBuildBadSearchPath(t *testing.T) {
	t.Parallel()

	_, err := New(WithSearchPath("/definitely/does/not/exist")).Build()
	require.Error(t, err)

	_, err = New(WithSearchTree("/definitely/does/not/exist")).Build()
	require.Error(t, err)
}

func TestBuildDuplicateCodec(t *testing.T) {
	t.Parallel()

	// The default registry already claims "json".
	_, err := New(WithCodec(jsoncodec.New())).Build()
	require.ErrorIs(t, err, codec.ErrDuplicateExtension)
}

func TestBuildCustomRegistry(t *testing.T) {
	t.Parallel()

	registry := codec.NewRegistry(jsoncodec.New())

	finder, err := New(
		WithRegistry(registry),
		WithSearchPath(t.TempDir()),
	).Build()
	require.NoError(t, err)
	require.Equal(t, []string{"*.json"}, finder.patterns)
}

func TestBuildDoesNotMutateCallerRegistry(t *testing.T) {
	t.Parallel()

	registry := codec.NewRegistry(jsoncodec.New())

	finder, err := New(
		WithRegistry(registry),
		WithCodec(tomlcodec.New()),
		WithSearchPath(t.TempDir()),
	).Build()
	require.NoError(t, err)

	// The extra codec is visible to the finder only.
	_, err = finder.registry.Lookup("toml")
	require.NoError(t, err)

	require.Equal(t, []string{"json"}, registry.Extensions())

	_, err = registry.Lookup("toml")
	require.ErrorIs(t, err, codec.ErrUnknownExtension)
}
