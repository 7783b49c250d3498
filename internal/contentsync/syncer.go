// Package contentsync stages generated content into the site's page tree.
//
// Each mapping copies a source tree over a destination tree. Existing
// destination files are overwritten; nothing is ever deleted.
package contentsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/newsroom/internal/core/domain"
	"github.com/custodia-labs/newsroom/internal/core/ports/driving"
	"github.com/custodia-labs/newsroom/internal/logger"
)

// Ensure Syncer implements the interface.
var _ driving.ContentSyncer = (*Syncer)(nil)

// DefaultDebounce groups bursts of file events into one sync pass.
const DefaultDebounce = 500 * time.Millisecond

// Syncer copies content trees according to a list of mappings.
type Syncer struct {
	mappings []domain.SyncMapping
	debounce time.Duration
}

// New creates a syncer for the given mappings.
func New(mappings []domain.SyncMapping) *Syncer {
	return &Syncer{mappings: mappings, debounce: DefaultDebounce}
}

// SetDebounce overrides the watch debounce delay.
func (s *Syncer) SetDebounce(d time.Duration) {
	if d > 0 {
		s.debounce = d
	}
}

// SyncOnce copies every mapping whose source exists. A failing mapping is
// reported and the remaining mappings still run.
func (s *Syncer) SyncOnce(ctx context.Context) driving.SyncReport {
	var report driving.SyncReport
	for _, m := range s.mappings {
		res := driving.MappingResult{From: m.From, To: m.To}

		if err := ctx.Err(); err != nil {
			res.Err = err
			report.Failed = append(report.Failed, res)
			continue
		}

		info, err := os.Stat(m.From)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			report.Skipped = append(report.Skipped, res)
			continue
		case err != nil:
			res.Err = err
			report.Failed = append(report.Failed, res)
			continue
		case !info.IsDir():
			res.Err = fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, m.From)
			report.Failed = append(report.Failed, res)
			continue
		}

		n, err := copyTree(m.From, m.To)
		res.Files = n
		if err != nil {
			res.Err = err
			logger.Error("Sync %s -> %s failed: %v", m.From, m.To, err)
			report.Failed = append(report.Failed, res)
			continue
		}
		logger.Debug("Copied %d files %s -> %s", n, m.From, m.To)
		report.Copied = append(report.Copied, res)
	}
	return report
}

// Watch runs an initial pass, then re-syncs after changes under any source
// tree until ctx is cancelled. Sources that do not exist when Watch starts
// are not watched.
func (s *Syncer) Watch(ctx context.Context, onSync func(driving.SyncReport)) error {
	if onSync == nil {
		onSync = func(driving.SyncReport) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, m := range s.mappings {
		if err := addTree(watcher, m.From); err != nil {
			logger.Warn("Not watching %s: %v", m.From, err)
		}
	}

	onSync(s.SyncOnce(ctx))

	var (
		timer   *time.Timer
		trigger <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						logger.Warn("Not watching %s: %v", event.Name, err)
					}
				}
			}
			logger.Debug("Change detected: %s %s", event.Op, event.Name)

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(s.debounce)
			trigger = timer.C

		case <-trigger:
			trigger = nil
			onSync(s.SyncOnce(ctx))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("File watcher error: %v", err)
		}
	}
}

// addTree watches root and every directory below it.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// copyTree copies every regular file under src to the same relative path
// under dst and returns the number of files copied.
func copyTree(src, dst string) (int, error) {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return 0, fmt.Errorf("create %s: %w", dst, err)
	}

	var n int
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			return os.MkdirAll(target, 0o755)
		case d.Type().IsRegular():
			if err := copyFile(path, target); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
