// Package watcher reloads the corpus when its files change on disk.
package watcher

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors the corpus directory and triggers a reload once writes
// settle. Rapid saves are debounced so an editor writing in several bursts
// causes one reload, not five.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dataDir  string
	reload   func() error
	logger   *zap.Logger
	debounce time.Duration
	pending  time.Time
	dirty    bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// watchedSuffixes are the corpus file extensions worth reacting to.
var watchedSuffixes = []string{".txt", ".md"}

// New creates a Watcher over dataDir that calls reload after changes
// settle.
func New(dataDir string, reload func() error, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		dataDir:  dataDir,
		reload:   reload,
		logger:   logger,
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine
// until Stop is called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dataDir); err != nil {
		return err
	}
	w.logger.Info("watching corpus directory", zap.String("dir", w.dataDir))

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("closing corpus watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("corpus watcher error", zap.Error(err))

		case <-ticker.C:
			w.maybeReload()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isCorpusFile(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("corpus file changed",
		zap.String("file", event.Name),
		zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.dirty = true
	w.pending = time.Now()
	w.mu.Unlock()
}

// maybeReload fires the reload once the last event is older than the
// debounce window.
func (w *Watcher) maybeReload() {
	w.mu.Lock()
	due := w.dirty && time.Since(w.pending) >= w.debounce
	if due {
		w.dirty = false
	}
	w.mu.Unlock()

	if !due {
		return
	}

	if err := w.reload(); err != nil {
		w.logger.Error("corpus reload failed", zap.Error(err))
		return
	}
	w.logger.Info("corpus reloaded after file change")
}

func isCorpusFile(name string) bool {
	for _, suffix := range watchedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
