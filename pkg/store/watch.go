package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/penpal/pkg/logging"
)

// Watch streams full state snapshots until ctx is cancelled. A snapshot is
// emitted after every burst of writes to the base path, so a second process
// (or a second terminal) editing the same journal shows up without a restart.
// Callers should drain the channel; when the consumer lags, intermediate
// snapshots are dropped and only the latest matters.
func (l *local) Watch(ctx context.Context) (<-chan *State, error) {
	if l.basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(l.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(l.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", l.basePath, err)
	}

	snapshots := make(chan *State, 1)

	go func() {
		defer close(snapshots)
		defer func() {
			if err := watcher.Close(); err != nil {
				logging.Errorf(logging.CategoryStore, "watcher close: %v", err)
			}
		}()

		throttle := newReloadThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		reload := func() {
			state, err := l.Load(ctx)
			if err != nil {
				logging.Errorf(logging.CategoryStore, "watch reload: %v", err)
				return
			}
			// The consumer replaces state wholesale, so when it lags
			// evict the queued stale snapshot and keep the newest.
			select {
			case <-snapshots:
			default:
			}
			select {
			case snapshots <- state:
			default:
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Errorf(logging.CategoryStore, "watch: %v", err)
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				throttle.Enqueue(reload)
			}
		}
	}()

	return snapshots, nil
}

// reloadThrottle coalesces rapid write notifications so one burst of key
// writes produces a single reload instead of one per file.
type reloadThrottle struct {
	mu    sync.Mutex
	timer *time.Timer
	delay time.Duration
}

func newReloadThrottle(delay time.Duration) *reloadThrottle {
	return &reloadThrottle{delay: delay}
}

func (t *reloadThrottle) Enqueue(fire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		t.timer = nil
		t.mu.Unlock()
		fire()
	})
}

func (t *reloadThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
