package trigger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	data := []byte(`
agents:
  - agent: licensing-agent
    description: Detected license-sensitive dependencies
    predicates:
      - kind: required_file
        values: [LICENSE, NOTICE]
      - kind: min_deps
        threshold: 5
`)
	rules, err := ParseRules(data)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Equal(t, "licensing-agent", rules[0].Agent)
	require.Len(t, rules[0].Predicates, 2)
	require.Equal(t, KindRequiredFile, rules[0].Predicates[0].Kind)
	require.Equal(t, 5, rules[0].Predicates[1].Threshold)
}

func TestParseRulesRejectsUnknownKind(t *testing.T) {
	data := []byte(`
agents:
  - agent: x-agent
    description: something
    predicates:
      - kind: haruspicy
        values: [entrails]
`)
	_, err := ParseRules(data)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown predicate kind")
}

func TestParseRulesRejectsMissingFields(t *testing.T) {
	cases := map[string]string{
		"no agent": `
agents:
  - description: d
    predicates: [{kind: framework, values: [react]}]
`,
		"no description": `
agents:
  - agent: a
    predicates: [{kind: framework, values: [react]}]
`,
		"no predicates": `
agents:
  - agent: a
    description: d
`,
		"threshold missing": `
agents:
  - agent: a
    description: d
    predicates: [{kind: min_files}]
`,
		"values missing": `
agents:
  - agent: a
    description: d
    predicates: [{kind: framework}]
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRules([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParseRulesEmptyPayload(t *testing.T) {
	_, err := ParseRules([]byte("  \n"))
	require.Error(t, err)
}

func TestLoadRuleFile(t *testing.T) {
	rules, err := LoadRuleFile("")
	require.NoError(t, err)
	require.Nil(t, rules)

	_, err = LoadRuleFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
agents:
  - agent: custom-agent
    description: d
    predicates: [{kind: framework, values: [vue]}]
`), 0o644))

	rules, err = LoadRuleFile(path)
	require.NoError(t, err)
	require.Len(t, rules, 1)
}
