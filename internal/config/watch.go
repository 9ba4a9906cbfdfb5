package config

import (
	"errors"

	"github.com/dshills/scribe/internal/config/watcher"
)

// ErrNoFile is returned by Watch when no config file was given.
var ErrNoFile = errors.New("no config file to watch")

// Watch reloads the configuration whenever the config file changes and
// passes the result to onReload. A failed reload reports the error and a nil
// config; the caller keeps its previous configuration. Close the returned
// watcher to stop.
func Watch(onReload func(*Config, error), opts ...Option) (*watcher.Watcher, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.file == "" {
		return nil, ErrNoFile
	}

	w, err := watcher.New()
	if err != nil {
		return nil, err
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		onReload(Load(opts...))
	})
	if err := w.Watch(o.file); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}
