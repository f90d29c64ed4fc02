package config

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/magnifier/internal/logger"
)

// Watcher reloads a config file whenever it is written and publishes the
// validated result. Invalid edits are logged and skipped.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	updates chan *Config
	done    chan struct{}
}

// Watch starts watching path. The parent directory is watched so that
// editors replacing the file through a rename are still seen.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		fs:      fw,
		updates: make(chan *Config, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers reloaded configs. Only the latest pending one is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Close stops watching. Updates is closed once the watch loop exits.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.updates)

	log := logger.Named("config")
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := build(w.path)
			if err != nil {
				log.Warn("ignoring config change", zap.String("path", w.path), zap.Error(err))
				continue
			}
			log.Info("config reloaded", zap.String("path", w.path))
			w.publish(cfg)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("config watcher error", zap.Error(err))
		}
	}
}

// publish replaces any config the consumer has not picked up yet.
func (w *Watcher) publish(cfg *Config) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
}
