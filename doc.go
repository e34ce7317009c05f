// Package samla builds a single configuration tree out of fragments spread
// across a filesystem.
//
// A Builder is configured with search roots, name patterns and a codec
// registry. Building it yields a Finder, which discovers matching files,
// renders each through text/template with a caller-supplied context, parses
// it with the codec selected by its extension, and folds the results into
// one merged tree with deterministic override semantics: fragments later in
// lexicographic order win, mappings merge key-wise, sequences and scalars
// are replaced wholesale.
//
// A fragment's location anchors its content: db/prod.toml lands under
// "db:prod" in the merged tree, while a file named config.* merges at the
// level of its directory.
//
//	finder, err := samla.New(
//	    samla.WithSearchTree("./conf.d"),
//	    samla.WithPattern("*.{{.Ext}}"),
//	    samla.WithTemplateContext(map[string]string{"env": "prod"}),
//	).Build()
//	if err != nil {
//	    return err
//	}
//
//	cfg, err := finder.Config(ctx)
//	if err != nil {
//	    return err
//	}
//
//	host, _ := cfg.Lookup("db:prod:host")
//
// JSON, YAML, TOML and Lua-table backends ship in-tree; others plug in via
// the codec.Registry. Strict mode turns type conflicts between fragments
// into errors instead of silent overrides. Finder.Watch re-delivers the
// configuration whenever the underlying files change, and Module/Provider
// integrate with Uber's Fx container.
package samla
