package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	root := mappingOf(
		"database", mappingOf(
			"host", String("localhost"),
			"replicas", Sequence(
				mappingOf("address", String("r1")),
				mappingOf("address", String("r2")),
			),
		),
		"debug", Bool(true),
	)

	testCases := []struct {
		name     string
		path     string
		expected Value
		found    bool
	}{
		{"empty path returns self", "", root, true},
		{"top-level key", "debug", Bool(true), true},
		{"nested key", "database:host", String("localhost"), true},
		{"sequence index", "database:replicas:1:address", String("r2"), true},
		{"missing key", "database:port", Value{}, false},
		{"index out of range", "database:replicas:5", Value{}, false},
		{"negative index", "database:replicas:-1", Value{}, false},
		{"non-numeric index", "database:replicas:first", Value{}, false},
		{"path into scalar", "debug:deeper", Value{}, false},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, ok := root.Lookup(testCase.path)
			require.Equal(t, testCase.found, ok)

			if testCase.found {
				require.True(t, got.Equal(testCase.expected))
			}
		})
	}
}
