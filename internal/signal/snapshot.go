// Package signal collects observable facts about a repository — languages,
// frameworks, structural patterns, size metrics, contributor activity — into
// an immutable Snapshot consumed by the trigger evaluator.
package signal

import (
	"sort"
	"strings"

	"github.com/agentscope/agentscope/internal/scan"
)

// Snapshot aggregates every signal collected for one analysis run. It is
// built once per run and never mutated afterwards; the evaluator reads it
// through accessors only.
type Snapshot struct {
	Languages        map[string]int
	Frameworks       map[string]bool
	Patterns         map[string]bool
	FileCount        int
	LineCount        int
	DependencyCount  int
	ContributorCount int
	Indicators       map[string]bool

	paths      []string
	extensions map[string]bool
	files      map[string]bool

	frameworkString string
}

// Build assembles a Snapshot from per-collector results. Collector outputs are
// merged here exactly once so no shared state crosses collector boundaries.
func Build(entries []scan.Entry, markers []string, langs LanguagesResult, fw FrameworksResult, pats PatternsResult, structure StructureResult, activity ActivityResult, indicators map[string]bool) Snapshot {
	paths := make([]string, 0, len(entries))
	extensions := make(map[string]bool, 16)
	files := make(map[string]bool, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
		if e.Ext != "" {
			extensions[e.Ext] = true
		}
		files[e.Path] = true
		if idx := strings.LastIndex(e.Path, "/"); idx >= 0 {
			files[e.Path[idx+1:]] = true
		}
	}
	for _, m := range markers {
		files[m] = true
	}
	sort.Strings(paths)

	tags := make([]string, 0, len(fw.Tags))
	for tag := range fw.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return Snapshot{
		Languages:        langs.Counts,
		Frameworks:       fw.Tags,
		Patterns:         pats.Tags,
		FileCount:        structure.FileCount,
		LineCount:        structure.LineCount,
		DependencyCount:  fw.DependencyCount,
		ContributorCount: activity.Contributors,
		Indicators:       indicators,
		paths:            paths,
		extensions:       extensions,
		files:            files,
		frameworkString:  strings.ToLower(strings.Join(tags, " ")),
	}
}

// HasFramework reports membership of a normalized framework tag.
func (s Snapshot) HasFramework(tag string) bool {
	return s.Frameworks[strings.ToLower(tag)]
}

// HasPattern reports membership of a structural pattern tag.
func (s Snapshot) HasPattern(tag string) bool {
	return s.Patterns[strings.ToLower(tag)]
}

// HasIndicator reports a named boolean indicator such as "production_code".
func (s Snapshot) HasIndicator(name string) bool {
	return s.Indicators[name]
}

// HasExtension reports whether any scanned file carries the extension
// (lowercased, with leading dot).
func (s Snapshot) HasExtension(ext string) bool {
	return s.extensions[strings.ToLower(ext)]
}

// HasFile reports whether a file with the given relative path or basename was
// seen by the scan, or was registered as a marker path.
func (s Snapshot) HasFile(name string) bool {
	return s.files[name]
}

// MatchesGlob reports whether any scanned path matches a glob-style pattern
// of the shape used by the rule table ("*/api/*", "Dockerfile", ...).
func (s Snapshot) MatchesGlob(pattern string) bool {
	for _, p := range s.paths {
		if PathMatches(p, pattern) {
			return true
		}
	}
	return false
}

// FrameworkString is the stringified framework set used by keyword predicates.
// Keyword matching is deliberately scoped to this metadata, not file contents.
func (s Snapshot) FrameworkString() string {
	return s.frameworkString
}

// SortedFrameworks returns framework tags in lexical order.
func (s Snapshot) SortedFrameworks() []string {
	return sortedKeys(s.Frameworks)
}

// SortedPatterns returns pattern tags in lexical order.
func (s Snapshot) SortedPatterns() []string {
	return sortedKeys(s.Patterns)
}

// LanguageCount pairs a language with its file count for ordered output.
type LanguageCount struct {
	Language string
	Count    int
}

// LanguagesByCount returns languages ordered by descending count, ties broken
// lexically, so reports are reproducible for a given snapshot.
func (s Snapshot) LanguagesByCount() []LanguageCount {
	out := make([]LanguageCount, 0, len(s.Languages))
	for lang, count := range s.Languages {
		out = append(out, LanguageCount{Language: lang, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Language < out[j].Language
	})
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
