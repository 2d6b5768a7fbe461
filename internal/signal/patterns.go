package signal

import (
	"strings"

	"github.com/agentscope/agentscope/internal/scan"
)

// patternProbe pairs a structural tag with the ordered path patterns that
// reveal it. The first pattern that matches wins; the rest are not evaluated.
type patternProbe struct {
	Tag      string
	Patterns []string
}

var patternProbes = []patternProbe{
	{"api", []string{"*/api/*", "*/routes/*", "*/endpoints/*"}},
	{"database", []string{"*/models/*", "*/db/*", "*/database/*"}},
	{"tests", []string{"*/tests/*", "*/test/*", "*/__tests__/*"}},
	{"frontend", []string{"*/components/*", "*/views/*", "*/pages/*"}},
	{"ml", []string{"*/training/*", "*/inference/*"}},
	{"ci", []string{".github/workflows", ".gitlab-ci.yml", "Jenkinsfile", ".circleci"}},
	{"docker", []string{"Dockerfile", "docker-compose.yml", "docker-compose.yaml", ".dockerignore"}},
}

// PatternsResult is the pattern collector's facet of the snapshot.
type PatternsResult struct {
	Tags map[string]bool
}

// CollectPatterns tests each tag's probes against the scanned entries,
// short-circuiting per tag on the first match. Probes naming paths inside
// ignored directories (e.g. .github/workflows) fall back to a direct
// existence check through the scanner.
func CollectPatterns(s *scan.Scanner, entries []scan.Entry) PatternsResult {
	tags := make(map[string]bool)
	for _, probe := range patternProbes {
		for _, pattern := range probe.Patterns {
			if matchesAny(entries, pattern) || (!strings.Contains(pattern, "*") && s.Exists(pattern)) {
				tags[probe.Tag] = true
				break
			}
		}
	}
	return PatternsResult{Tags: tags}
}

func matchesAny(entries []scan.Entry, pattern string) bool {
	for _, e := range entries {
		if PathMatches(e.Path, pattern) {
			return true
		}
	}
	return false
}

// PathMatches tests a relative slash-separated path against the glob shapes
// the rule table uses: "*/name/*" matches any path with a "name" directory
// segment; anything else matches a path prefix, a basename, or a directory
// segment of the same name.
func PathMatches(rel, pattern string) bool {
	if strings.HasPrefix(pattern, "*/") && strings.HasSuffix(pattern, "/*") {
		want := strings.Trim(pattern, "*/")
		segments := strings.Split(rel, "/")
		for _, seg := range segments[:len(segments)-1] {
			if seg == want {
				return true
			}
		}
		return false
	}
	if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
		return true
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == pattern {
			return true
		}
	}
	return false
}
