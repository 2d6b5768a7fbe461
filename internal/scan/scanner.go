package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one regular file yielded by the walk.
type Entry struct {
	Path string // relative to the scan root, slash-separated
	Ext  string // lowercased extension including the dot, "" when absent
}

// defaultIgnore lists path substrings excluded from every scan: version-control
// metadata, dependency caches, build output, and virtual environments.
var defaultIgnore = []string{
	".git", "node_modules", "__pycache__", ".pytest_cache",
	"venv", "env", ".venv", "dist", "build", ".next",
	".cache", "coverage", ".DS_Store",
}

// Scanner walks a repository tree yielding non-ignored regular files.
// The walk is restartable: each call to Walk or Entries re-reads the tree.
type Scanner struct {
	root   string
	ignore []string
}

// New validates the root path and constructs a scanner. A missing or
// non-directory root is the one fatal condition of the whole analysis.
func New(root string, extraIgnore ...string) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", root)
	}

	ignore := make([]string, 0, len(defaultIgnore)+len(extraIgnore))
	ignore = append(ignore, defaultIgnore...)
	ignore = append(ignore, extraIgnore...)

	return &Scanner{root: abs, ignore: ignore}, nil
}

// Root returns the absolute scan root.
func (s *Scanner) Root() string {
	return s.root
}

// Ignored reports whether a relative path hits the ignore list. Matching is
// plain substring containment anywhere in the path.
func (s *Scanner) Ignored(rel string) bool {
	for _, sub := range s.ignore {
		if strings.Contains(rel, sub) {
			return true
		}
	}
	return false
}

// Walk visits every non-ignored regular file under the root. Unreadable
// entries are skipped, never fatal; fn returning an error stops the walk.
func (s *Scanner) Walk(fn func(Entry) error) error {
	return filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable subtree: degrade, do not abort
			return nil
		}
		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if s.Ignored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		return fn(Entry{Path: rel, Ext: strings.ToLower(filepath.Ext(rel))})
	})
}

// Entries materializes one full walk into a slice for the path-only collectors.
func (s *Scanner) Entries() ([]Entry, error) {
	var entries []Entry
	err := s.Walk(func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Exists reports whether a path relative to the root exists on disk. Used for
// markers that live inside ignored directories (e.g. .github/workflows).
func (s *Scanner) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
	return err == nil
}
