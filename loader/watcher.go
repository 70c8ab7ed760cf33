package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/privlang/privlang/taxonomy"
)

// WatchConfig configures dataset file watching.
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before revalidating.
	DebounceDelay string `yaml:"debounce_delay"`

	// FileExtensions lists file extensions that trigger a reload.
	FileExtensions []string `yaml:"file_extensions"`

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceDelay:  "500ms",
		FileExtensions: []string{".yml", ".yaml"},
		ExcludeDirs:    []string{".git", "node_modules", "vendor"},
	}
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// Result is one watch-triggered load attempt. Err carries the validation
// failure when the dataset no longer builds; Taxonomy is nil in that case.
type Result struct {
	Taxonomy *taxonomy.Taxonomy
	Err      error
}

// Watcher re-loads and re-validates a taxonomy directory whenever its
// dataset files change. Changes are debounced so an editor save burst
// produces one reload.
type Watcher struct {
	config     WatchConfig
	root       string
	loader     *Loader
	watcher    *fsnotify.Watcher
	logger     *slog.Logger
	extensions map[string]bool
	excludes   map[string]bool

	pendingMu sync.Mutex
	pending   int

	results chan Result
}

// NewWatcher creates a watcher over a taxonomy directory.
func NewWatcher(config WatchConfig, root string, l *Loader, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}
	if l == nil {
		l = New(logger)
	}

	extensions := make(map[string]bool)
	exts := config.FileExtensions
	if len(exts) == 0 {
		exts = DefaultWatchConfig().FileExtensions
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = true
	}

	excludes := make(map[string]bool)
	dirs := config.ExcludeDirs
	if len(dirs) == 0 {
		dirs = DefaultWatchConfig().ExcludeDirs
	}
	for _, dir := range dirs {
		excludes[dir] = true
	}

	return &Watcher{
		config:     config,
		root:       root,
		loader:     l,
		watcher:    fsw,
		logger:     logger,
		extensions: extensions,
		excludes:   excludes,
		results:    make(chan Result, 16),
	}, nil
}

// Results returns the channel of load results.
func (w *Watcher) Results() <-chan Result {
	return w.results
}

// Start begins watching. The results channel is closed when the context is
// cancelled or the watcher is stopped.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Taxonomy watcher started",
		"root", w.root,
		"debounce", w.config.GetDebounceDelay())
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		if w.excludes[base] || (strings.HasPrefix(base, ".") && base != ".") {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.results)
	ticker := time.NewTicker(w.config.GetDebounceDelay())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending()
		}
	}
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	ext := strings.ToLower(filepath.Ext(path))
	if !w.extensions[ext] {
		// New subdirectories need their own watch.
		if event.Has(fsnotify.Create) {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				w.handleNewDirectory(path)
			}
		}
		return
	}

	relPath, _ := filepath.Rel(w.root, path)
	for excludeDir := range w.excludes {
		if strings.Contains(relPath, excludeDir+string(filepath.Separator)) {
			return
		}
	}

	w.pendingMu.Lock()
	w.pending++
	w.pendingMu.Unlock()

	w.logger.Debug("Dataset change detected", "path", relPath, "op", event.Op.String())
}

func (w *Watcher) handleNewDirectory(path string) {
	base := filepath.Base(path)
	if w.excludes[base] || strings.HasPrefix(base, ".") {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		w.logger.Warn("Failed to watch new directory", "path", path, "error", err)
	}
}

func (w *Watcher) flushPending() {
	w.pendingMu.Lock()
	changes := w.pending
	w.pending = 0
	w.pendingMu.Unlock()

	if changes == 0 {
		return
	}

	tax, err := w.loader.LoadDir(w.root, nil)
	if err != nil {
		w.logger.Warn("Taxonomy revalidation failed", "root", w.root, "error", err)
		select {
		case w.results <- Result{Err: err}:
		default:
			w.logger.Warn("Dropping watch result, channel full")
		}
		return
	}

	w.logger.Info("Taxonomy revalidated", "root", w.root, "entries", tax.Len())
	select {
	case w.results <- Result{Taxonomy: tax}:
	default:
		w.logger.Warn("Dropping watch result, channel full")
	}
}
