package observer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// ContentChangedMsg is emitted when the watched file changes on disk.
type ContentChangedMsg struct {
	Path string
}

// DefaultDebounce batches rapid file changes (editors often write twice).
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors one content file and emits ContentChangedMsg when it is
// written, created or replaced.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	logger    *slog.Logger
	msgChan   chan tea.Msg
	stopChan  chan struct{}
	mu        sync.Mutex
	stopped   bool
}

// NewWatcher creates a watcher for path. The parent directory is watched
// too, so atomic saves (write temp + rename) are seen.
func NewWatcher(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      abs,
		debounce:  debounce,
		logger:    logger,
		msgChan:   make(chan tea.Msg, 1),
		stopChan:  make(chan struct{}),
	}

	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if _, err := os.Stat(abs); err == nil {
		if err := fsWatcher.Add(abs); err != nil {
			logger.Debug("watcher: add file", "path", abs, "err", err)
		}
	}

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start begins watching and returns the message channel. The channel is
// closed once the watcher stops.
func (w *Watcher) Start() <-chan tea.Msg {
	go w.run()
	return w.msgChan
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true

	close(w.stopChan)
	w.fsWatcher.Close()
}

// Listen returns a command that waits for the next message on ch. It
// yields nil once ch is closed; re-issue it after every message.
func Listen(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (w *Watcher) run() {
	name := filepath.Base(w.path)
	fire := make(chan struct{}, 1)
	var debounceTimer *time.Timer

	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		close(w.msgChan)
	}()

	for {
		select {
		case <-w.stopChan:
			return

		case <-fire:
			select {
			case w.msgChan <- ContentChangedMsg{Path: w.path}:
			default:
				// A change is already queued.
			}

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("watcher: event", "op", event.Op, "name", event.Name)

			if event.Op&fsnotify.Create != 0 {
				if err := w.fsWatcher.Add(w.path); err != nil {
					w.logger.Debug("watcher: re-add file", "path", w.path, "err", err)
				}
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: error", "err", err)
		}
	}
}
