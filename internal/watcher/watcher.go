// Package watcher reports changes to the local file being displayed so it
// can be reloaded.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultPollInterval is the stat interval used when fsnotify is unavailable.
const DefaultPollInterval = 2 * time.Second

// ErrFileRemoved is reported when the watched file disappears.
var ErrFileRemoved = errors.New("watched file was removed")

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) { w.debounceDuration = d }
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) { w.pollInterval = d }
}

// WithForcePoll uses polling even when fsnotify works.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) { w.forcePoll = force }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// Watcher follows one file at a time. Each change is delivered on Changed
// as the file's path; bursts are debounced.
type Watcher struct {
	debounceDuration time.Duration
	pollInterval     time.Duration
	forcePoll        bool
	logger           *zap.Logger

	mu        sync.Mutex
	path      string
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	polling   bool

	changeCh chan string
}

// New creates a Watcher that is not yet following anything.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		logger:           zap.NewNop(),
		changeCh:         make(chan string, 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.debouncer = NewDebouncer(w.debounceDuration)
	return w
}

// Watch starts following path, replacing whatever was watched before.
// Watching the path already followed does nothing.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.cancel != nil && w.path == abs {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	w.Stop()

	info, err := os.Stat(abs)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	w.path = abs
	w.cancel = cancel
	w.polling = w.forcePoll

	if !w.polling {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			// The directory is watched so editors that save by rename are seen.
			if err := fsw.Add(filepath.Dir(abs)); err != nil {
				fsw.Close()
				w.polling = true
			} else {
				w.fsWatcher = fsw
			}
		} else {
			w.polling = true
		}
	}

	w.wg.Add(1)
	if w.polling {
		w.logger.Debug("watching file by polling", zap.String("path", abs))
		go w.watchPolling(ctx, abs, info)
	} else {
		w.logger.Debug("watching file", zap.String("path", abs))
		go w.watchFsnotify(ctx, abs, w.fsWatcher)
	}
	return nil
}

// Stop stops following the current file. It waits for the watching
// goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	fsw := w.fsWatcher
	w.cancel = nil
	w.fsWatcher = nil
	w.path = ""
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	if fsw != nil {
		fsw.Close()
	}
	w.wg.Wait()
	w.debouncer.Cancel()
}

// Path returns the followed path, or "".
func (w *Watcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// IsPolling reports whether the watcher fell back to polling.
func (w *Watcher) IsPolling() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polling
}

// Changed delivers the path of the file each time it changes.
func (w *Watcher) Changed() <-chan string {
	return w.changeCh
}

// Next blocks until the next change or until ctx is done.
func (w *Watcher) Next(ctx context.Context) (string, error) {
	select {
	case p := <-w.changeCh:
		return p, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (w *Watcher) watchFsnotify(ctx context.Context, path string, fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	target := filepath.Base(path)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			switch {
			case event.Op&fsnotify.Remove != 0:
				w.logger.Debug("watched file removed", zap.String("path", path), zap.Error(ErrFileRemoved))
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				w.debouncer.Trigger(func() { w.notify(ctx, path) })
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", zap.String("path", path), zap.Error(err))
		}
	}
}

func (w *Watcher) watchPolling(ctx context.Context, path string, last os.FileInfo) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	lastMtime, lastSize := last.ModTime(), last.Size()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.ModTime().After(lastMtime) || info.Size() != lastSize {
				lastMtime, lastSize = info.ModTime(), info.Size()
				w.debouncer.Trigger(func() { w.notify(ctx, path) })
			}
		}
	}
}

func (w *Watcher) notify(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	select {
	case w.changeCh <- path:
	default:
	}
}
