package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchAndLint lints once, then again each time a watched file under root changes and
// the tree has been quiet for debounce. It returns when ctx is done.
func watchAndLint(ctx context.Context, root string, debounce time.Duration, log *logrus.Logger, watched func(string) bool, lint func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := setupWatcher(watcher, root); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}

	relint := func() {
		if err := lint(ctx); err != nil {
			log.WithError(err).Warn("lint run failed")
		}
	}

	relint()
	log.Infof("Watching for changes in %s", root)

	pending := time.NewTimer(debounce)
	pending.Stop()
	defer pending.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Also watch new directories
			if event.Op&fsnotify.Create != 0 {
				fi, err := os.Stat(event.Name)
				if err == nil && fi.IsDir() && !skipDir(fi.Name()) {
					log.WithField("dir", event.Name).Debug("new directory")
					if err := watcher.Add(event.Name); err != nil {
						log.WithError(err).Warn("error watching new directory")
					}
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 && watched(event.Name) {
				log.WithField("file", event.Name).Debug("modified file")
				pending.Reset(debounce)
			}
		case <-pending.C:
			relint()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}

// setupWatcher recursively adds all directories to the watcher
func setupWatcher(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && skipDir(info.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
