// Package watch reports debounced changes to the Markdown pages of a wiki
// directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before reporting.
const DefaultDebounce = 200 * time.Millisecond

// Options configures Run.
type Options struct {
	Debounce time.Duration
	// Ignore lists absolute paths whose events are dropped, e.g. the
	// generated index when it lives inside the wiki directory.
	Ignore []string
}

// Run watches dir (non-recursively) until ctx is cancelled. After each burst
// of create/write/remove/rename events on .md files it sends the last
// changed page name on changes. A pending notification is never duplicated:
// if the receiver is busy the send is skipped, since one pending signal
// already covers every change. changes is closed when Run returns.
func Run(ctx context.Context, dir string, logger *slog.Logger, opts Options, changes chan<- string) error {
	defer close(changes)

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ignored := make(map[string]struct{}, len(opts.Ignore))
	for _, p := range opts.Ignore {
		if abs, err := filepath.Abs(p); err == nil {
			ignored[abs] = struct{}{}
		}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: new watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}

	logger.Info("watcher: started", slog.String("root", dir))

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending string
	)
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(opts.Debounce)
			timerCh = timer.C
		} else {
			timer.Reset(opts.Debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			select {
			case changes <- pending:
			default:
				logger.Debug("watcher: change already pending", slog.String("page", pending))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if abs, err := filepath.Abs(ev.Name); err == nil {
				if _, skip := ignored[abs]; skip {
					continue
				}
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = filepath.Base(ev.Name)
			logger.Debug("watcher: event", slog.String("page", pending), slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
