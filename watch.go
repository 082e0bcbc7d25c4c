package framy

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions controls a Watcher.
type WatchOptions struct {
	// Debounce is how long a file must stay quiet before it is framed.
	Debounce time.Duration
	Logger   *slog.Logger
	// OnError is called for every image that fails, the watcher keeps running.
	OnError func(path string, err error)
}

// Watcher frames images as they appear in a directory.
// Files are framed one at a time on the goroutine that calls Run.
type Watcher struct {
	framer   *Framer
	dir      string
	debounce time.Duration
	log      *slog.Logger
	onError  func(path string, err error)
	fsw      *fsnotify.Watcher
}

var watchedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".tif": true, ".tiff": true, ".bmp": true,
}

// NewWatcher creates a Watcher on dir.
func NewWatcher(f *Framer, dir string, opts ...func(o *WatchOptions)) (*Watcher, error) {
	opt := WatchOptions{
		Debounce: 500 * time.Millisecond,
		Logger:   f.log,
	}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch folder %s: %w", dir, err)
	}

	return &Watcher{
		framer:   f,
		dir:      dir,
		debounce: opt.Debounce,
		log:      opt.Logger,
		onError:  opt.OnError,
		fsw:      fsw,
	}, nil
}

// Run processes events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	w.log.Info("framy: watching folder", "dir", w.dir)

	tick := w.debounce / 2
	if tick <= 0 {
		tick = time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	pending := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !Watchable(ev.Name) {
				continue
			}
			pending[ev.Name] = time.Now().Add(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("framy: watcher error", "error", err)

		case now := <-ticker.C:
			var due []string
			for p, at := range pending {
				if !now.Before(at) {
					due = append(due, p)
				}
			}
			sort.Strings(due)
			for _, p := range due {
				delete(pending, p)
				w.frame(ctx, p)
			}
		}
	}
}

func (w *Watcher) frame(ctx context.Context, path string) {
	if _, err := w.framer.Process(ctx, path); err != nil {
		w.log.Error("framy: image failed", "path", path, "error", err)
		if w.onError != nil {
			w.onError(path, err)
		}
		return
	}
	fmt.Fprintf(w.framer.stdout, "%s done\n", path)
}

// Watchable reports whether a file name looks like a source image, dotfiles and
// framed outputs are excluded.
func Watchable(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	if !watchedExtensions[ext] {
		return false
	}
	return !strings.HasSuffix(strings.TrimSuffix(base, filepath.Ext(base)), framedSuffix)
}
