package samla_test

import (
	"context"
	"fmt"

	samla "github.com/0xalexb/samla"
)

// Example discovers the fragments under testdata/example: a root-anchored
// config.yaml and a db/prod.toml anchored at "db:prod".
func Example() {
	finder, err := samla.New(
		samla.WithSearchTree("testdata/example"),
	).Build()
	if err != nil {
		fmt.Println(err)

		return
	}

	cfg, err := finder.Config(context.Background())
	if err != nil {
		fmt.Println(err)

		return
	}

	name, _ := cfg.Lookup("app:name")
	host, _ := cfg.Lookup("db:prod:host")

	s, _ := name.AsString()
	fmt.Println(s)

	s, _ = host.AsString()
	fmt.Println(s)

	// Output:
	// example
	// db.example.com
}

// ExampleProvider decodes a subtree into a typed struct, applying defaults.
func ExampleProvider() {
	type appConfig struct {
		Name    string `mapstructure:"name"`
		Workers int    `mapstructure:"workers"`
	}

	finder, err := samla.New(
		samla.WithSearchTree("testdata/example"),
	).Build()
	if err != nil {
		fmt.Println(err)

		return
	}

	cfg, err := finder.Config(context.Background())
	if err != nil {
		fmt.Println(err)

		return
	}

	app, err := samla.Provider(&appConfig{}, "app")(cfg)
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Printf("%s with %d workers\n", app.Name, app.Workers)

	// Output:
	// example with 2 workers
}
