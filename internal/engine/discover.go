package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover expands the argument list into the sorted set of files to lint.
// Directories are walked recursively for *.swift files with the exclude
// patterns applied; explicitly named files are taken as-is, excluded or not,
// because the user asked for them by name. Duplicates collapse to one entry.
func Discover(args []string, exclude []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.ToSlash(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// Unreadable arguments stay in the list; loading reports the
			// I/O diagnostic with the path attached.
			add(arg)
			continue
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if Excluded(filepath.ToSlash(path), exclude) && path != arg {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.HasSuffix(path, ".swift") {
				return nil
			}
			if Excluded(filepath.ToSlash(path), exclude) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// FileIDs are assigned in this order, so sorted paths make diagnostics
	// sort by path without ever comparing strings again.
	sort.Strings(files)
	return files, nil
}

// Excluded reports whether path matches any exclude pattern. A pattern is
// tried as a glob against the full slash path and the basename, then as a
// plain substring, which covers the common "skip this directory" setups
// without a pattern language of our own.
func Excluded(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pat := range patterns {
		if pat == "" {
			continue
		}
		if ok, err := filepath.Match(pat, path); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pat, base); err == nil && ok {
			return true
		}
		if strings.Contains(path, pat) {
			return true
		}
	}
	return false
}
