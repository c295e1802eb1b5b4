package ulog

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// ConfigWatcher applies per-tag level changes from a config file to a
// live Logger whenever the file is written. Only the runtime-settable
// part of the config is applied; ceiling, colors and timestamp source
// stay fixed at construction.
type ConfigWatcher struct {
	logger  *Logger
	path    string
	watcher *fsnotify.Watcher
	onError func(error)

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// WatchConfig starts watching path and returns the running watcher.
// The containing directory is watched rather than the file itself so
// editors that replace the file atomically keep triggering reloads.
// onError receives load/apply failures; nil means they are dropped,
// since the logging facility must not log its own faults.
func WatchConfig(l *Logger, path string, onError func(error)) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating watcher")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "resolving %s", path)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.Wrapf(err, "watching %s", filepath.Dir(abs))
	}

	cw := &ConfigWatcher{
		logger:  l,
		path:    abs,
		watcher: w,
		onError: onError,
		done:    make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.run()
	return cw, nil
}

func (cw *ConfigWatcher) run() {
	defer cw.wg.Done()
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Name != cw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				cw.reload()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.fail(err)
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		cw.fail(err)
		return
	}
	if err := cfg.Apply(cw.logger); err != nil {
		cw.fail(err)
	}
}

func (cw *ConfigWatcher) fail(err error) {
	if cw.onError != nil {
		cw.onError(err)
	}
}

// Close stops the watcher. Safe to call more than once.
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.closeOnce.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
		cw.wg.Wait()
	})
	return err
}
