package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"swiftstyle/internal/engine"
)

// watchDebounce coalesces editor save bursts into one re-run.
const watchDebounce = 200 * time.Millisecond

// runCheckWatch runs one check, then re-runs whenever a watched .swift file
// changes, until the context is canceled. Watch mode never fails the process
// over lint findings; the findings are on screen and the next save gets a
// fresh verdict.
func runCheckWatch(cmd *cobra.Command, args []string, opts engine.Options, render renderOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			// Watch the directory; many editors replace the file on save,
			// which drops a watch registered on the file itself.
			if err := watcher.Add(filepath.Dir(arg)); err != nil {
				return fmt.Errorf("failed to watch %q: %w", arg, err)
			}
			continue
		}
		if err := watchDirs(watcher, arg, opts.Exclude); err != nil {
			return fmt.Errorf("failed to watch %q: %w", arg, err)
		}
	}

	runOnce := func() {
		result, err := engine.CheckMany(cmd.Context(), args, opts)
		if err != nil {
			if errors.Is(err, cmd.Context().Err()) {
				return
			}
			fmt.Fprintf(os.Stderr, "swiftstyle: %v\n", err)
			return
		}
		if err := renderReport(os.Stdout, result, opts.Registry, render); err != nil {
			fmt.Fprintf(os.Stderr, "swiftstyle: %v\n", err)
		}
	}

	runOnce()
	if !render.quiet {
		fmt.Fprintln(os.Stderr, "watching for changes; press Ctrl-C to stop")
	}

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case <-rerun:
			runOnce()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New subdirectories need their own watch.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDirs(watcher, event.Name, opts.Exclude)
					continue
				}
			}
			if !strings.HasSuffix(event.Name, ".swift") {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "swiftstyle: watch error: %v\n", err)
		}
	}
}

// watchDirs registers dir and every non-excluded subdirectory. Files are not
// added individually; the directory watch covers them.
func watchDirs(watcher *fsnotify.Watcher, dir string, exclude []string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if path != dir && engine.Excluded(filepath.ToSlash(path), exclude) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
