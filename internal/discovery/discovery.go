// Package discovery enumerates the Lua source files that feed the bundle.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SourceExt is the source-file extension the bundler operates on
const SourceExt = ".lua"

// Discover walks srcDir and returns the absolute paths of all source files,
// sorted lexicographically by full path. Exclusion globs are matched against
// the slash-normalized path relative to srcDir; `**` patterns are supported.
// An empty result is not an error here; the build driver decides whether
// that is fatal.
func Discover(srcDir string, excludeGlobs []string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, SourceExt) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	if len(excludeGlobs) == 0 {
		return files, nil
	}

	kept := files[:0]
	for _, file := range files {
		if !matchesAny(srcDir, file, excludeGlobs) {
			kept = append(kept, file)
		}
	}
	return kept, nil
}

func matchesAny(srcDir string, file string, patterns []string) bool {
	rel, err := filepath.Rel(srcDir, file)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		// Bad patterns never match, same as a pattern naming no file
		matched, _ := doublestar.Match(pattern, rel)
		if matched {
			return true
		}
	}
	return false
}
