package samla_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	samla "github.com/0xalexb/samla"
	"github.com/0xalexb/samla/value"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
}

// fixtureTree writes a layered configuration tree:
//
//	config.toml      base settings, anchored at the root
//	config.yaml      root override (sorts after config.toml)
//	db/config.yaml   anchored at "db"
//	db/prod.toml     anchored at "db:prod", uses the template context
func fixtureTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	writeFile(t, root, "config.toml", `
features = ["a", "b", "c"]

[app]
name = "samla"
workers = 2
`)
	writeFile(t, root, "config.yaml", `
app:
  workers: 4
features:
  - d
`)
	writeFile(t, root, "db/config.yaml", "pool: 10\n")
	writeFile(t, root, "db/prod.toml", `
host = "{{.dbhost}}"
port = 5432
`)

	return root
}

func requireInt(t *testing.T, cfg *samla.Config, path string, expected int64) {
	t.Helper()

	v, ok := cfg.Lookup(path)
	require.True(t, ok, "path %q not found", path)

	n, ok := v.AsInt()
	require.True(t, ok, "path %q is %s, not an integer", path, v.Kind())
	require.Equal(t, expected, n)
}

func TestFinderConfig(t *testing.T) {
	t.Parallel()

	finder, err := samla.New(
		samla.WithSearchTree(fixtureTree(t)),
		samla.WithTemplateContext(map[string]string{"dbhost": "db.internal"}),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	// Lexicographic order makes config.yaml override config.toml.
	requireInt(t, cfg, "app:workers", 4)

	// Keys only in the base survive the override.
	v, ok := cfg.Lookup("app:name")
	require.True(t, ok)
	require.True(t, v.Equal(value.String("samla")))

	// Sequences are replaced wholesale, never spliced.
	v, ok = cfg.Lookup("features")
	require.True(t, ok)
	require.True(t, v.Equal(value.Sequence(value.String("d"))))

	// db/config.yaml anchors at "db", db/prod.toml at "db:prod".
	requireInt(t, cfg, "db:pool", 10)
	requireInt(t, cfg, "db:prod:port", 5432)

	// The template context reached the fragment.
	v, ok = cfg.Lookup("db:prod:host")
	require.True(t, ok)
	require.True(t, v.Equal(value.String("db.internal")))

	require.Equal(t,
		[]string{"config.toml", "config.yaml", "db/config.yaml", "db/prod.toml"},
		cfg.Files())
}

func TestFinderExcludes(t *testing.T) {
	t.Parallel()

	finder, err := samla.New(
		samla.WithSearchTree(fixtureTree(t)),
		samla.WithTemplateContext(map[string]string{"dbhost": "x"}),
		samla.WithExclude("db/**"),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	_, ok := cfg.Lookup("db")
	require.False(t, ok)
	require.Equal(t, []string{"config.toml", "config.yaml"}, cfg.Files())
}

func TestFinderFilter(t *testing.T) {
	t.Parallel()

	finder, err := samla.New(
		samla.WithSearchTree(fixtureTree(t)),
		samla.WithTemplateContext(map[string]string{"dbhost": "x"}),
		samla.WithFilter(func(rel string) bool {
			return !strings.HasSuffix(rel, ".yaml")
		}),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	// Only the TOML fragments remain.
	requireInt(t, cfg, "app:workers", 2)
	require.Equal(t, []string{"config.toml", "db/prod.toml"}, cfg.Files())
}

func TestFinderSortOverride(t *testing.T) {
	t.Parallel()

	finder, err := samla.New(
		samla.WithSearchTree(fixtureTree(t)),
		samla.WithTemplateContext(map[string]string{"dbhost": "x"}),
		// Reverse the order: config.toml now wins over config.yaml.
		samla.WithSort(func(a, b string) int { return strings.Compare(b, a) }),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	requireInt(t, cfg, "app:workers", 2)
}

func TestFinderStrictConflict(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "config.toml", "[app]\nport = 1\n")
	writeFile(t, root, "config.yaml", "app:\n  - 1\n  - 2\n")

	build := func(opts ...samla.Option) (*samla.Config, error) {
		finder, err := samla.New(append(opts, samla.WithSearchPath(root))...).Build()
		require.NoError(t, err)

		return finder.Config(context.Background())
	}

	_, err := build(samla.WithStrict())
	require.Error(t, err)

	var conflict *value.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "config.yaml", conflict.Source)
	require.Equal(t, []string{"app"}, conflict.Path)

	// Lenient mode lets the later fragment win.
	cfg, err := build()
	require.NoError(t, err)

	v, ok := cfg.Lookup("app")
	require.True(t, ok)
	require.Equal(t, value.KindSequence, v.Kind())
}

func TestFinderPatternSelection(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "app.yaml", "a: 1\n")
	writeFile(t, root, "other.yaml", "b: 2\n")

	finder, err := samla.New(
		samla.WithSearchPath(root),
		samla.WithPattern("app.{{.Ext}}"),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	requireInt(t, cfg, "app:a", 1)

	_, ok := cfg.Lookup("other")
	require.False(t, ok)
}

func TestFinderRootNameOption(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "base.yaml", "x: 1\n")

	finder, err := samla.New(
		samla.WithSearchPath(root),
		samla.WithRootName("base"),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	// "base" anchors at the root instead of under a "base" key.
	requireInt(t, cfg, "x", 1)

	_, ok := cfg.Lookup("base")
	require.False(t, ok)
}

func TestFinderSkipsFilesWithoutExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "config.yaml", "x: 1\n")
	writeFile(t, root, "noext", `{"y": 2}`)

	finder, err := samla.New(
		samla.WithSearchPath(root),
		samla.WithPattern("config.{{.Ext}}", "noext"),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	requireInt(t, cfg, "x", 1)

	_, ok := cfg.Lookup("noext")
	require.False(t, ok)
}

func TestFinderDefaultExtension(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "noext", `{"y": 2}`)

	finder, err := samla.New(
		samla.WithSearchPath(root),
		samla.WithPattern("noext"),
		samla.WithDefaultExtension("json"),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)

	requireInt(t, cfg, "noext:y", 2)
}

func TestFinderParseErrorNamesFragment(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "config.json", `{"broken":`)

	finder, err := samla.New(samla.WithSearchPath(root)).Build()
	require.NoError(t, err)

	_, err = finder.Config(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "config.json")
}

func TestFinderTemplateErrorNamesFragment(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "config.yaml", "host: {{.missing}}\n")

	finder, err := samla.New(samla.WithSearchPath(root)).Build()
	require.NoError(t, err)

	_, err = finder.Config(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "config.yaml")
}

func TestFinderEmptyTree(t *testing.T) {
	t.Parallel()

	finder, err := samla.New(samla.WithSearchTree(t.TempDir())).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)
	require.Empty(t, cfg.Files())
	require.Equal(t, value.KindMapping, cfg.Value().Kind())
}

func TestFinderDeduplicatesAcrossLocators(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "config.yaml", "x: 1\n")

	// The same directory registered twice yields each file once.
	finder, err := samla.New(
		samla.WithSearchPath(root, root),
	).Build()
	require.NoError(t, err)

	cfg, err := finder.Config(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"config.yaml"}, cfg.Files())
}
