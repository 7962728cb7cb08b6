package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Avyakta000/mcp-client/pkg/logging"
)

const watchSubsystem = "config"

// debounceInterval is the time to wait after the last file event before
// reloading, so editors that write in multiple steps trigger one reload.
const debounceInterval = 500 * time.Millisecond

// Watch monitors the config file and invokes onChange with the freshly
// loaded configuration whenever it is written. It blocks until the context
// is canceled. Used by the interactive dashboard so an endpoint change
// does not require a restart.
func Watch(ctx context.Context, path string, onChange func(Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory rather than the file so atomic renames
	// (write temp + rename) keep being observed.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	var debounce *time.Timer
	reload := func() {
		cfg, err := Load(path)
		if err != nil {
			logging.Error(watchSubsystem, err, "failed to reload config %s", path)
			return
		}
		logging.Info(watchSubsystem, "config reloaded from %s", path)
		onChange(cfg)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn(watchSubsystem, "config watcher error: %v", err)
		}
	}
}
