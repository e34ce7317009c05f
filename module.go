package samla

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"
)

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration
// structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Module returns an Fx module that builds the merged configuration once and
// provides *Config to the container. The name is used as the Fx module name.
func Module(name string, opts ...Option) fx.Option {
	return fx.Module(name,
		fx.Provide(func() (*Config, error) {
			finder, err := New(opts...).Build()
			if err != nil {
				return nil, fmt.Errorf("building finder: %w", err)
			}

			cfg, err := finder.Config(context.Background())
			if err != nil {
				return nil, fmt.Errorf("building configuration: %w", err)
			}

			return cfg, nil
		}),
	)
}

// Provider returns a function that decodes the subtree at a colon-separated
// path into target, sets defaults, and validates. The empty path decodes the
// whole configuration. The returned constructor is Fx-friendly: supply it to
// fx.Provide and the container injects *Config.
func Provider[T any](target *T, path string) func(*Config) (*T, error) {
	return func(cfg *Config) (*T, error) {
		err := cfg.DecodePath(path, target)
		if err != nil {
			return nil, fmt.Errorf("decoding error: %w", err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("path", path))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}
