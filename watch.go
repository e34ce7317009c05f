package samla

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of filesystem events (editors typically
// write, chmod and rename in quick succession) into one rebuild.
const watchDebounce = 250 * time.Millisecond

// Watch rebuilds the configuration whenever files under the search roots
// change and delivers each rebuilt *Config on the returned channel. The
// first configuration is delivered shortly after the call. Build errors and
// watcher errors arrive on the error channel; the watch keeps running after
// an error so transient states (half-written files) recover on the next
// change. Both channels close when ctx is cancelled.
//
// When the consumer lags, stale configurations are dropped in favor of the
// latest one.
func (f *Finder) Watch(ctx context.Context) (<-chan *Config, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}

	for _, l := range f.locators {
		if err := addRecursive(watcher, l.Root()); err != nil {
			watcher.Close()

			return nil, nil, err
		}
	}

	configs := make(chan *Config, 1)
	errs := make(chan error, 1)

	go f.watchLoop(ctx, watcher, configs, errs)

	return configs, errs, nil
}

func (f *Finder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, configs chan *Config, errs chan error) {
	defer watcher.Close()
	defer close(configs)
	defer close(errs)

	// The initial expiry delivers the first configuration without waiting
	// for a change.
	debounce := time.NewTimer(watchDebounce)
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					// New subdirectories must be watched too.
					if err := addRecursive(watcher, event.Name); err != nil {
						f.logger.Debug("watching new directory failed",
							slog.String("path", event.Name), slog.Any("error", err))
					}
				}
			}

			debounce.Reset(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			deliver(errs, err)
		case <-debounce.C:
			cfg, err := f.Config(ctx)
			if err != nil {
				deliver(errs, fmt.Errorf("rebuilding configuration: %w", err))

				continue
			}

			deliver(configs, cfg)
		}
	}
}

// deliver sends v on ch, displacing an unconsumed previous item so the
// channel always holds the latest state.
func deliver[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return watcher.Add(p)
	})
	if err != nil {
		return fmt.Errorf("watching %q: %w", root, err)
	}

	return nil
}
