package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// WatchWeight watches path for writes and, on every event, reloads the
// config and invokes onWeightChange with the new weight mode if it
// differs from the last-seen one. Grounded on the teacher's
// pkg/credswatcher.StartWatching select-loop shape. Returns once ctx is
// cancelled or one of the watcher's channels closes; an individual watcher
// error is logged and watching continues.
func WatchWeight(ctx context.Context, path string, overrides Config, onWeightChange func(cfg Config)) {
	if path == "" {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).Warn("config: failed to start file watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		log.WithError(err).WithField("path", path).Warn("config: failed to watch file")
		return
	}

	last, err := Load(path, overrides)
	if err != nil {
		log.WithError(err).Warn("config: initial load failed")
	}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			updated, err := Load(path, overrides)
			if err != nil {
				log.WithError(err).Warn("config: reload failed, keeping previous config")
				continue
			}
			if updated.Weight != last.Weight {
				last = updated
				onWeightChange(updated)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Warn("config: watcher error")
		case <-ctx.Done():
			return
		}
	}
}
