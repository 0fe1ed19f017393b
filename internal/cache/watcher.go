package cache

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// ChangeEvent describes one content-tree change scoped to a version.
type ChangeEvent struct {
	Version    string `json:"version"`
	Path       string `json:"path"`
	Op         string `json:"op"`
	Structural bool   `json:"structural"`
}

// ChangePublisher forwards change events to interested parties (e.g. sibling
// processes). Implementations must tolerate being called from a goroutine
// and never propagate errors into the watch loop.
type ChangePublisher interface {
	Publish(event ChangeEvent) error
}

// Watcher evicts cache entries when the content tree changes. It watches the
// content root recursively and delivers evictions synchronously from the
// event loop; eviction is O(matching keys) map deletion and never blocks
// the event source on I/O.
//
// Invalidation here is best-effort liveness: a missed event is corrected by
// TTL expiry regardless of watch delivery.
type Watcher struct {
	root      string
	store     *Store
	publisher ChangePublisher
	fsw       *fsnotify.Watcher
	done      chan struct{}
}

// NewWatcher creates a watcher over the content root. Every existing
// subdirectory is added to the watch set; directories created later are
// added as their create events arrive.
func NewWatcher(root string, store *Store, publisher ChangePublisher) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve content root: %w", err)
	}

	w := &Watcher{
		root:      absRoot,
		store:     store,
		publisher: publisher,
		fsw:       fsw,
		done:      make(chan struct{}),
	}

	if err := w.addRecursive(absRoot); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Start launches the event loop.
func (w *Watcher) Start() {
	slog.Info("Starting content watcher", logfields.Path(w.root))
	go w.loop()
}

// Close stops the event loop and releases the fsnotify watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable subtree, skip
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			slog.Warn("Failed to watch directory", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("Content watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	// Newly created directories join the watch set so nested changes keep
	// arriving.
	if event.Op.Has(fsnotify.Create) {
		if err := w.fsw.Add(event.Name); err == nil {
			_ = w.addRecursive(event.Name)
		}
	}

	if !isContentFile(event.Name) {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	version, _, found := strings.Cut(rel, "/")
	if !found {
		return
	}

	structural := event.Op.Has(fsnotify.Rename) || event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Create)

	slog.Debug("Content change detected",
		logfields.Version(version),
		logfields.File(rel),
		slog.String("op", event.Op.String()))

	w.store.InvalidateVersion(version)
	if structural {
		w.store.InvalidateVersionList()
	}

	if w.publisher != nil {
		// Publishing may do network I/O; keep the event loop responsive.
		ev := ChangeEvent{Version: version, Path: rel, Op: event.Op.String(), Structural: structural}
		go func() {
			if err := w.publisher.Publish(ev); err != nil {
				slog.Warn("Failed to publish change event", logfields.Error(err))
			}
		}()
	}
}

// isContentFile limits invalidation to document and category-descriptor
// files.
func isContentFile(path string) bool {
	name := filepath.Base(path)
	if name == "_category_.yml" || name == "_category_.yaml" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}
