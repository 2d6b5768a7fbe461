package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir mirrors t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCmd(t, "version")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestDoctorCommand(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := runCmd(t, "doctor")
	require.NoError(t, err)
	require.Contains(t, out, "Config OK")
	require.Contains(t, out, "git:")
}

func TestAnalyzeCommand(t *testing.T) {
	chdir(t, t.TempDir())

	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "main.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repo, "app.py"), []byte("print(1)\n"), 0o644))

	out, err := runCmd(t, "analyze", repo)
	require.NoError(t, err)
	require.Contains(t, out, "Codebase Analysis Report")
	require.Contains(t, out, "Go: 1 files")
	require.Contains(t, out, "Python: 1 files")
}

func TestAnalyzeCommandJSON(t *testing.T) {
	chdir(t, t.TempDir())

	repo := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repo, "main.go"), []byte("package main\n"), 0o644))

	out, err := runCmd(t, "analyze", "--json", repo)
	require.NoError(t, err)

	idx := strings.Index(out, "{")
	require.Greater(t, idx, 0, "expected a JSON payload after the report")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out[idx:]), &rec))
	require.Contains(t, rec, "enabled_agents")
	require.Contains(t, rec, "run_id")
}

func TestAnalyzeCommandInvalidPath(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := runCmd(t, "analyze", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
