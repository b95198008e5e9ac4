package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/grafana/docnav/internal/docs"
	"github.com/grafana/docnav/internal/helpers"
)

// DefaultWatchDelay is how long the watcher waits for changes to settle
// before reindexing.
const DefaultWatchDelay = 200 * time.Millisecond

// Watch reindexes the site whenever files under the docs directory, or Go
// sources of the documented module, change. Paths matching the exclude globs
// are ignored. It returns when ctx is done.
func (s *Site) Watch(ctx context.Context, delay time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	for _, root := range s.watchRoots() {
		if err := s.watchTree(watcher, root, root); err != nil {
			return err
		}
	}

	reindex := newDebouncer(delay, func() {
		if err := s.Reindex(); err != nil {
			s.logger.Warn("Failed to reindex documentation", slog.String("error", err.Error()))
			return
		}
		s.logger.Info("Reindexed documentation", slog.Int("section_count", s.Finder().Index().Len()))
	})
	defer reindex.Stop()

	s.logger.Info("Watching documentation",
		slog.String("root", s.cfg.DocsDir),
		slog.String("packages_dir", s.cfg.PackagesDir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(event) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if err := s.watchTree(watcher, s.rootOf(event.Name), event.Name); err != nil {
					s.logger.Warn("Failed to watch new path",
						slog.String("path_type", helpers.GetPathType(event.Name)),
						slog.String("error", err.Error()))
				}
			}

			s.logger.Debug("Documentation changed",
				slog.String("op", event.Op.String()),
				slog.String("path_type", helpers.GetPathType(event.Name)))
			reindex.Trigger()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", slog.String("error", err.Error()))
		}
	}
}

func (s *Site) watchRoots() []string {
	roots := []string{s.cfg.DocsDir}
	if s.cfg.PackagesDir != "" {
		roots = append(roots, s.cfg.PackagesDir)
	}
	return roots
}

// rootOf returns the innermost watched root containing file, or "".
func (s *Site) rootOf(file string) string {
	var best string
	for _, root := range s.watchRoots() {
		rel, err := filepath.Rel(root, file)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(root) > len(best) {
			best = root
		}
	}
	return best
}

func (s *Site) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}

	root := s.rootOf(event.Name)
	if root == "" {
		return false
	}
	rel, err := filepath.Rel(root, event.Name)
	if err != nil || docs.Excluded(filepath.ToSlash(rel), s.cfg.Excludes) {
		return false
	}

	if root != s.cfg.DocsDir {
		if strings.Contains("/"+filepath.ToSlash(rel), "/.") {
			return false
		}
		switch helpers.GetPathType(event.Name) {
		case "go", "gomod", "directory":
			return true
		default:
			return false
		}
	}
	return true
}

// watchTree adds dir and every non-excluded directory below it. Exclude
// globs are matched relative to root. A dir that is not a directory is
// ignored.
func (s *Site) watchTree(watcher *fsnotify.Watcher, root, dir string) error {
	return filepath.WalkDir(dir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			if file == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, file)
		if err == nil && rel != "." && docs.Excluded(filepath.ToSlash(rel), s.cfg.Excludes) {
			return filepath.SkipDir
		}

		if err := watcher.Add(file); err != nil {
			return fmt.Errorf("failed to watch %s: %w", file, err)
		}
		return nil
	})
}
