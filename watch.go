package flycam

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const configDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a config file when it changes. Successfully parsed
// configs arrive on Updates; the frame loop should poll it without blocking
// and apply the value with Controller.SetConfig. Only the newest pending
// config is kept.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  Logger

	Updates chan Config
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func WatchConfig(path string, logger Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("flycam: watch config %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("flycam: watch config %s: %w", path, err)
	}
	// Editors often replace the file, so watch the directory.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("flycam: watch config %s: %w", path, err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		watcher: w,
		logger:  logger,
		Updates: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go cw.run()
	return cw, nil
}

// Poll returns the newest reloaded config, if any.
func (w *ConfigWatcher) Poll() (Config, bool) {
	select {
	case cfg, ok := <-w.Updates:
		return cfg, ok
	default:
		return Config{}, false
	}
}

func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Updates)
		close(w.Errors)
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer close(w.done)

	// Reload once the file has been quiet for configDebounce, so a truncate
	// followed by a write is read as a single change.
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(configDebounce)
			} else {
				timer.Reset(configDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warnf("config reload failed: %v", err)
		w.sendError(err)
		return
	}
	w.logger.Infof("config reloaded from %s", w.path)

	// Replace a pending config nobody has picked up yet.
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	default:
	}
}

func (w *ConfigWatcher) sendError(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}
