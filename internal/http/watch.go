package http

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-folio/internal/logging"
	"github.com/goliatone/go-folio/pkg/interfaces"
)

// DefaultDebounce groups bursts of editor writes into one rebuild.
const DefaultDebounce = 250 * time.Millisecond

// RebuildFunc is called once per settled burst of changes.
type RebuildFunc func(ctx context.Context) error

// Watcher rebuilds the site when files under its roots change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	roots    []string
	debounce time.Duration
	rebuild  RebuildFunc
	logger   interfaces.Logger
}

// NewWatcher watches every directory below roots. Missing roots are skipped.
func NewWatcher(rebuild RebuildFunc, debounce time.Duration, logger interfaces.Logger, roots ...string) (*Watcher, error) {
	if rebuild == nil {
		return nil, errors.New("folio watcher: rebuild function is required")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{watcher: fw, debounce: debounce, rebuild: rebuild, logger: logger}
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			logger.Warn("watcher.root.skipped", "path", root)
			continue
		}
		if err := w.addTree(root); err != nil {
			_ = fw.Close()
			return nil, err
		}
		w.roots = append(w.roots, root)
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Roots lists the directories being watched recursively.
func (w *Watcher) Roots() []string {
	return append([]string(nil), w.roots...)
}

// Run processes events until ctx is cancelled. Rebuilds run on the calling
// goroutine, so they never overlap. Reset relies on the Go 1.23 timer
// semantics: no stale tick is delivered after Stop or Reset.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("watcher.add.failed", "path", event.Name, "error", err)
					}
				}
			}
			w.logger.Debug("watcher.change", "path", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := w.rebuild(ctx); err != nil {
				w.logger.Error("watcher.rebuild.failed", "error", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher.error", "error", err)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
