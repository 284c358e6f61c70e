// Package watcher provides file system watching for source tree changes.
package watcher

import (
	"context"
	"os"
	"sync"
	"time"

	"lcb/internal/discovery"
	"lcb/internal/logging"
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
)

// Event represents a file system event
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// String returns a string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// RebuildHandler is called with the batch of changes after the quiet period
type RebuildHandler func(events []Event)

// Config contains watcher configuration
type Config struct {
	DebounceMs   int
	PollInterval time.Duration
	ExcludeGlobs []string
}

// DefaultConfig returns the default watcher configuration
func DefaultConfig() Config {
	return Config{
		DebounceMs:   500,
		PollInterval: 1 * time.Second,
	}
}

// Watcher polls a source root for changed source files and invokes the
// rebuild handler after a debounce window.
type Watcher struct {
	srcDir    string
	config    Config
	logger    *logging.Logger
	handler   RebuildHandler
	debouncer *BatchDebouncer

	snapshot map[string]time.Time // path -> mtime

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
	wg     sync.WaitGroup
}

// New creates a watcher over the given source root
func New(srcDir string, config Config, logger *logging.Logger, handler RebuildHandler) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		srcDir:   srcDir,
		config:   config,
		logger:   logger,
		handler:  handler,
		snapshot: make(map[string]time.Time),
		ctx:      ctx,
		cancel:   cancel,
	}
	w.debouncer = NewBatchDebouncer(time.Duration(config.DebounceMs)*time.Millisecond, w.emit)
	return w
}

// Start takes the initial snapshot and begins polling
func (w *Watcher) Start() error {
	snap, err := w.takeSnapshot()
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.snapshot = snap
	w.mu.Unlock()

	w.logger.Info("Watching source tree", map[string]interface{}{
		"srcDir":     w.srcDir,
		"files":      len(snap),
		"debounceMs": w.config.DebounceMs,
	})

	w.wg.Add(1)
	go w.poll()
	return nil
}

// Stop stops polling and discards pending events
func (w *Watcher) Stop() {
	w.cancel()
	w.wg.Wait()
	w.debouncer.Cancel()
	w.logger.Info("Watcher stopped", nil)
}

// poll scans the source tree on a fixed interval
// Using polling instead of fsnotify for simplicity and cross-platform compatibility
func (w *Watcher) poll() {
	defer w.wg.Done()

	interval := w.config.PollInterval
	if interval <= 0 {
		interval = 1 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.scan()
		case <-w.ctx.Done():
			return
		}
	}
}

// scan diffs the current source tree against the last snapshot
func (w *Watcher) scan() {
	current, err := w.takeSnapshot()
	if err != nil {
		w.logger.Warn("Source scan failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	w.mu.Lock()
	previous := w.snapshot
	w.snapshot = current
	w.mu.Unlock()

	now := time.Now()
	for path, mtime := range current {
		prev, seen := previous[path]
		switch {
		case !seen:
			w.debouncer.Add(Event{Type: EventCreate, Path: path, Timestamp: now})
		case mtime.After(prev):
			w.debouncer.Add(Event{Type: EventModify, Path: path, Timestamp: now})
		}
	}
	for path := range previous {
		if _, still := current[path]; !still {
			w.debouncer.Add(Event{Type: EventDelete, Path: path, Timestamp: now})
		}
	}
}

// takeSnapshot records the modification time of every source file
func (w *Watcher) takeSnapshot() (map[string]time.Time, error) {
	files, err := discovery.Discover(w.srcDir, w.config.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	snap := make(map[string]time.Time, len(files))
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue // deleted between walk and stat
		}
		snap[path] = info.ModTime()
	}
	return snap, nil
}

// emit hands the debounced batch to the rebuild handler
func (w *Watcher) emit(events []Event) {
	w.logger.Debug("Source changes detected", map[string]interface{}{
		"eventCount": len(events),
	})
	if w.handler != nil {
		w.handler(events)
	}
}

// Flush immediately delivers any pending events
func (w *Watcher) Flush() {
	w.debouncer.Flush()
}

// Stats returns watcher statistics
func (w *Watcher) Stats() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	return map[string]interface{}{
		"srcDir":        w.srcDir,
		"trackedFiles":  len(w.snapshot),
		"debounceMs":    w.config.DebounceMs,
		"pendingEvents": w.debouncer.EventCount(),
	}
}
