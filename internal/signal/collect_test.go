package signal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agentscope/agentscope/internal/scan"
)

func newScanner(t *testing.T, files map[string]string) (*scan.Scanner, []scan.Entry) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	s, err := scan.New(dir)
	require.NoError(t, err)
	entries, err := s.Entries()
	require.NoError(t, err)
	return s, entries
}

func TestCollectLanguages(t *testing.T) {
	_, entries := newScanner(t, map[string]string{
		"app.py":       "print(1)\n",
		"pkg/util.py":  "print(2)\n",
		"main.go":      "package main\n",
		"notes.txt":    "unmapped\n",
		"web/Form.tsx": "export {}\n",
	})

	res := CollectLanguages(entries)
	require.Equal(t, map[string]int{"Python": 2, "Go": 1, "React TypeScript": 1}, res.Counts)
	require.Equal(t, 4, res.MatchedFiles)
}

func TestCollectPatternsShortCircuit(t *testing.T) {
	s, entries := newScanner(t, map[string]string{
		"server/api/users.go":   "package api\n",
		"server/routes/r.go":    "package routes\n",
		"web/components/a.tsx":  "export {}\n",
		"Dockerfile":            "FROM scratch\n",
		"pkg/tests/unit.py":     "x\n",
	})

	res := CollectPatterns(s, entries)
	require.True(t, res.Tags["api"])
	require.True(t, res.Tags["frontend"])
	require.True(t, res.Tags["docker"])
	require.True(t, res.Tags["tests"])
	require.False(t, res.Tags["database"])
	require.False(t, res.Tags["ml"])
}

func TestCollectPatternsCIThroughMarker(t *testing.T) {
	s, entries := newScanner(t, map[string]string{
		".github/workflows/ci.yml": "on: push\n",
		"main.go":                  "package main\n",
	})

	// the walk ignores .github, so the ci tag must come from the existence probe
	res := CollectPatterns(s, entries)
	require.True(t, res.Tags["ci"])
}

func TestPathMatches(t *testing.T) {
	require.True(t, PathMatches("server/api/users.go", "*/api/*"))
	require.False(t, PathMatches("api.go", "*/api/*"))
	require.False(t, PathMatches("server/api", "*/api/*"))
	require.True(t, PathMatches("Dockerfile", "Dockerfile"))
	require.True(t, PathMatches("deploy/Dockerfile", "Dockerfile"))
	require.True(t, PathMatches(".gitlab-ci.yml", ".gitlab-ci.yml"))
	require.False(t, PathMatches("src/main.go", "Dockerfile"))
}

func TestCollectStructureSkipsBinaryLines(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "text.txt"), []byte("one\ntwo\nthree"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0x00, 0x01, 0x02, '\n', 0x03}, 0o644))

	s, err := scan.New(dir)
	require.NoError(t, err)
	entries, err := s.Entries()
	require.NoError(t, err)

	res := CollectStructure(s.Root(), entries)
	require.Equal(t, 2, res.FileCount, "binary file still counts as a file")
	require.Equal(t, 3, res.LineCount, "binary file contributes no lines")
}

func TestCollectFrameworks(t *testing.T) {
	res := CollectFrameworks(map[string][]string{
		"package.json":     {"react", "react-dom", "jest"},
		"requirements.txt": {"flask", "numpy"},
	})

	require.True(t, res.Tags["react"])
	require.True(t, res.Tags["flask"])
	require.True(t, res.Tags["numpy"])
	require.False(t, res.Tags["django"])
	require.Equal(t, 5, res.DependencyCount)
}

func TestCollectFrameworksScopedPerManifest(t *testing.T) {
	// "gin" is only a Go indicator; an npm dep containing it must not tag gin
	res := CollectFrameworks(map[string][]string{
		"package.json": {"virgin-sdk"},
	})
	require.False(t, res.Tags["gin"])
}

func TestCollectActivityDegradesToZero(t *testing.T) {
	dir := t.TempDir() // not a git repository
	res := CollectActivity(context.Background(), dir, 2*time.Second)
	require.Equal(t, 0, res.Contributors)
}

func TestCollectIndicators(t *testing.T) {
	s, _ := newScanner(t, map[string]string{"Dockerfile": "FROM scratch\n"})

	indicators := CollectIndicators(s, PatternsResult{Tags: map[string]bool{"api": true}}, ActivityResult{Contributors: 3})
	require.True(t, indicators["production_code"])
	require.True(t, indicators["public_api"])
	require.True(t, indicators["multiple_contributors"])

	indicators = CollectIndicators(s, PatternsResult{Tags: map[string]bool{}}, ActivityResult{Contributors: 2})
	require.False(t, indicators["public_api"])
	require.False(t, indicators["multiple_contributors"])
}
