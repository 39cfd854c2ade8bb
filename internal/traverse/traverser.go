// Package traverse enumerates candidate source files under a root directory.
package traverse

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ignoredDirs are pruned entirely: neither the directory nor anything under
// it is visited. The set is fixed and not configurable.
var ignoredDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	"dist":         {},
	".idea":        {},
	".vscode":      {},
}

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Traverser walks a directory tree depth-first and collects file paths.
// User-supplied ignore patterns are matched against slash-separated paths
// relative to the root, on top of the fixed ignored directory set.
type Traverser struct {
	ignorePatterns []compiledPattern
}

// New creates a Traverser. Each ignore pattern must be a valid glob
// (separator '/'); patterns match files and directories alike.
func New(ignorePatterns []string) (*Traverser, error) {
	t := &Traverser{}
	for _, pattern := range ignorePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		t.ignorePatterns = append(t.ignorePatterns, compiledPattern{pattern: pattern, glob: g})
	}
	return t, nil
}

// Walk returns every file reachable from root by depth-first descent, in
// directory-listing order, with ignored directories pruned. It fails if the
// root does not exist, is not a directory, or a directory cannot be read.
func (t *Traverser) Walk(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("folder does not exist: %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	files := []string{}
	if err := t.walkDir(root, root, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (t *Traverser) walkDir(root, dir string, files *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if _, pruned := ignoredDirs[entry.Name()]; pruned {
				continue
			}
			if t.ignored(root, path) {
				continue
			}
			if err := t.walkDir(root, path, files); err != nil {
				return err
			}
			continue
		}
		if t.ignored(root, path) {
			continue
		}
		*files = append(*files, path)
	}
	return nil
}

// ignored reports whether the path matches a user-supplied ignore pattern.
func (t *Traverser) ignored(root, path string) bool {
	if len(t.ignorePatterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, cp := range t.ignorePatterns {
		if cp.glob.Match(rel) {
			return true
		}
		// A directory pattern like "vendor/**" should also prune the
		// "vendor" directory itself.
		if !strings.HasSuffix(rel, "/**") && cp.glob.Match(rel+"/**") {
			return true
		}
	}
	return false
}
