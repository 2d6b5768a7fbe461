package signal

import (
	"github.com/agentscope/agentscope/internal/scan"
)

// extensionLanguages is the fixed extension -> language mapping. Files with
// unmapped extensions stay out of the histogram (and of MatchedFiles) but are
// still visited by the scanner for the other collectors.
var extensionLanguages = map[string]string{
	".py":    "Python",
	".js":    "JavaScript",
	".ts":    "TypeScript",
	".jsx":   "React",
	".tsx":   "React TypeScript",
	".java":  "Java",
	".go":    "Go",
	".rs":    "Rust",
	".rb":    "Ruby",
	".php":   "PHP",
	".cpp":   "C++",
	".c":     "C",
	".cs":    "C#",
	".swift": "Swift",
	".kt":    "Kotlin",
}

// LanguagesResult is the language collector's facet of the snapshot.
type LanguagesResult struct {
	Counts       map[string]int
	MatchedFiles int
}

// CollectLanguages builds the language histogram from scanned entries. A
// language appears only when at least one matching file exists.
func CollectLanguages(entries []scan.Entry) LanguagesResult {
	counts := make(map[string]int)
	matched := 0
	for _, e := range entries {
		lang, ok := extensionLanguages[e.Ext]
		if !ok {
			continue
		}
		counts[lang]++
		matched++
	}
	return LanguagesResult{Counts: counts, MatchedFiles: matched}
}
