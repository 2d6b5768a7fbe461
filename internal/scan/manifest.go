package scan

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// manifestReaders maps known dependency-manifest filenames to their parser.
// Each parser returns normalized (lowercased, deduplicated) dependency names.
var manifestReaders = map[string]func([]byte) []string{
	"package.json":     readPackageJSON,
	"requirements.txt": readRequirementsTxt,
	"Gemfile":          readGemfile,
	"go.mod":           readGoMod,
	"Cargo.toml":       readCargoToml,
	"composer.json":    readComposerJSON,
}

// ReadManifests parses every known manifest found directly under root and
// returns filename -> dependency names. A manifest that is absent, malformed,
// or unreadable simply does not appear in the result; nothing here errors.
func ReadManifests(root string) map[string][]string {
	out := make(map[string][]string)
	for name, read := range manifestReaders {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		deps := read(data)
		if len(deps) > 0 {
			out[name] = deps
		}
	}
	return out
}

func readPackageJSON(data []byte) []string {
	var doc struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	names := make([]string, 0, len(doc.Dependencies)+len(doc.DevDependencies))
	for name := range doc.Dependencies {
		names = append(names, name)
	}
	for name := range doc.DevDependencies {
		names = append(names, name)
	}
	return normalize(names)
}

func readRequirementsTxt(data []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// strip version specifiers and extras: name[extra]==1.0
		if idx := strings.IndexAny(line, "=<>~![; "); idx >= 0 {
			line = line[:idx]
		}
		if line != "" {
			names = append(names, line)
		}
	}
	return normalize(names)
}

func readGemfile(data []byte) []string {
	var names []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "gem ") && !strings.HasPrefix(line, "gem(") {
			continue
		}
		if name := firstQuoted(line); name != "" {
			names = append(names, name)
		}
	}
	return normalize(names)
}

func readGoMod(data []byte) []string {
	var names []string
	inBlock := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "require ("):
			inBlock = true
		case inBlock && line == ")":
			inBlock = false
		case inBlock:
			fields := strings.Fields(line)
			if len(fields) >= 2 && strings.Contains(fields[0], "/") {
				names = append(names, fields[0])
			}
		case strings.HasPrefix(line, "require "):
			fields := strings.Fields(line)
			if len(fields) >= 3 {
				names = append(names, fields[1])
			}
		}
	}
	return normalize(names)
}

func readCargoToml(data []byte) []string {
	var names []string
	inDeps := false
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			section := strings.Trim(line, "[]")
			inDeps = section == "dependencies" || section == "dev-dependencies" ||
				strings.HasSuffix(section, ".dependencies")
			continue
		}
		if !inDeps || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, _, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), `"`))
		if name != "" {
			names = append(names, name)
		}
	}
	return normalize(names)
}

func readComposerJSON(data []byte) []string {
	var doc struct {
		Require    map[string]string `json:"require"`
		RequireDev map[string]string `json:"require-dev"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	names := make([]string, 0, len(doc.Require)+len(doc.RequireDev))
	for name := range doc.Require {
		names = append(names, name)
	}
	for name := range doc.RequireDev {
		names = append(names, name)
	}
	return normalize(names)
}

func firstQuoted(line string) string {
	for _, quote := range []string{`"`, "'"} {
		if _, rest, ok := strings.Cut(line, quote); ok {
			if name, _, ok := strings.Cut(rest, quote); ok {
				return name
			}
		}
	}
	return ""
}

func normalize(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		lower := strings.ToLower(strings.TrimSpace(name))
		if lower == "" || seen[lower] {
			continue
		}
		seen[lower] = true
		out = append(out, lower)
	}
	sort.Strings(out)
	return out
}
