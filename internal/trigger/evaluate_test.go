package trigger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentscope/agentscope/internal/scan"
	"github.com/agentscope/agentscope/internal/signal"
)

// snapshotWith builds a snapshot from raw facets for evaluator tests.
func snapshotWith(t *testing.T, entries []scan.Entry, frameworks []string, patterns []string, files, deps, contributors int, indicators ...string) signal.Snapshot {
	t.Helper()
	fw := map[string]bool{}
	for _, tag := range frameworks {
		fw[tag] = true
	}
	pats := map[string]bool{}
	for _, tag := range patterns {
		pats[tag] = true
	}
	inds := map[string]bool{}
	for _, name := range indicators {
		inds[name] = true
	}
	return signal.Build(entries, nil,
		signal.CollectLanguages(entries),
		signal.FrameworksResult{Tags: fw, DependencyCount: deps},
		signal.PatternsResult{Tags: pats},
		signal.StructureResult{FileCount: files, LineCount: 0},
		signal.ActivityResult{Contributors: contributors},
		inds)
}

func TestDefaultsAlwaysEnabled(t *testing.T) {
	table := Builtin()
	empty := snapshotWith(t, nil, nil, nil, 0, 0, 0)

	eval := Evaluate(empty, table)
	require.Equal(t, table.Defaults, eval.Defaults)
	for _, agent := range table.Defaults {
		d := eval.Decisions[agent]
		require.True(t, d.Enabled, agent)
		require.Equal(t, DefaultReason, d.Reason)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	snap := snapshotWith(t,
		[]scan.Entry{{Path: "server/api/users.go", Ext: ".go"}},
		[]string{"react", "prometheus"},
		[]string{"api", "docker"},
		60, 25, 4,
		"production_code", "public_api", "multiple_contributors")

	first := Evaluate(snap, Builtin())
	second := Evaluate(snap, Builtin())
	require.Equal(t, first, second)
}

func TestReactEnablesFrontendAgent(t *testing.T) {
	snap := snapshotWith(t, nil, []string{"react"}, nil, 0, 0, 0)

	eval := Evaluate(snap, Builtin())
	d := eval.Decisions["ux-accessibility-agent"]
	require.True(t, d.Enabled)
	require.Equal(t, "Detected frontend/UI project", d.Reason)
}

func TestContributorBoundaryAtThree(t *testing.T) {
	below := snapshotWith(t, nil, nil, nil, 0, 0, 2)
	require.False(t, Evaluate(below, Builtin()).Decisions["devex-agent"].Enabled)

	at := snapshotWith(t, nil, nil, nil, 0, 0, 3)
	require.True(t, Evaluate(at, Builtin()).Decisions["devex-agent"].Enabled)
}

func TestObservabilityRequiresAPIAndDockerPatterns(t *testing.T) {
	both := snapshotWith(t, nil, nil, []string{"api", "docker"}, 0, 0, 0)
	require.True(t, Evaluate(both, Builtin()).Decisions["observability-agent"].Enabled)

	apiOnly := snapshotWith(t, nil, nil, []string{"api"}, 0, 0, 0)
	require.False(t, Evaluate(apiOnly, Builtin()).Decisions["observability-agent"].Enabled)

	dockerOnly := snapshotWith(t, nil, nil, []string{"docker"}, 0, 0, 0)
	require.False(t, Evaluate(dockerOnly, Builtin()).Decisions["observability-agent"].Enabled)
}

func TestRefactorAgentFileThreshold(t *testing.T) {
	small := snapshotWith(t, nil, nil, nil, 49, 0, 0)
	require.False(t, Evaluate(small, Builtin()).Decisions["refactor-agent"].Enabled)

	large := snapshotWith(t, nil, nil, nil, 50, 0, 0)
	eval := Evaluate(large, Builtin())
	require.True(t, eval.Decisions["refactor-agent"].Enabled)
	require.Equal(t, "Large codebase detected (refactoring recommended)", eval.Decisions["refactor-agent"].Reason)
}

func TestKeywordMatchesFrameworkStringOnly(t *testing.T) {
	// "fastapi" contains the token "api": the redteam keyword predicate fires
	// off framework metadata, never file contents.
	snap := snapshotWith(t, nil, []string{"fastapi"}, nil, 0, 0, 0)
	require.True(t, Evaluate(snap, Builtin()).Decisions["security-redteam-agent"].Enabled)

	bare := snapshotWith(t, nil, nil, nil, 0, 0, 0)
	require.False(t, Evaluate(bare, Builtin()).Decisions["security-redteam-agent"].Enabled)
}

func TestPredicatePriorityFixesReportedReason(t *testing.T) {
	rule := Rule{
		Agent:       "custom-agent",
		Description: "fallback",
		Predicates: []Predicate{
			// authored out of order on purpose
			{Kind: KindFramework, Values: []string{"react"}, Reason: "framework reason"},
			{Kind: KindFilePattern, Values: []string{"*/api/*"}, Reason: "pattern reason"},
		},
	}
	table := Table{Rules: []Rule{rule}}

	snap := snapshotWith(t,
		[]scan.Entry{{Path: "server/api/users.go", Ext: ".go"}},
		[]string{"react"}, nil, 1, 0, 0)

	eval := Evaluate(snap, table)
	require.Equal(t, "pattern reason", eval.Decisions["custom-agent"].Reason,
		"file-pattern outranks framework membership")
}

func TestUnsatisfiedRuleIsConsideredWithoutReason(t *testing.T) {
	empty := snapshotWith(t, nil, nil, nil, 0, 0, 0)
	eval := Evaluate(empty, Builtin())

	require.Contains(t, eval.Considered, "ux-accessibility-agent")
	d := eval.Decisions["ux-accessibility-agent"]
	require.False(t, d.Enabled)
	require.Empty(t, d.Reason)
}

func TestEnabledAgentsOrdering(t *testing.T) {
	snap := snapshotWith(t, nil, []string{"react"}, nil, 0, 0, 0)
	eval := Evaluate(snap, Builtin())

	enabled := eval.EnabledAgents()
	require.Equal(t, append(Builtin().Defaults, "ux-accessibility-agent"), enabled)
}

func TestTableExtendReplacesAndAppends(t *testing.T) {
	base := Builtin()
	extended := base.Extend([]Rule{
		{Agent: "devex-agent", Description: "override", Predicates: []Predicate{{Kind: KindMinContributors, Threshold: 10}}},
		{Agent: "custom-agent", Description: "brand new", Predicates: []Predicate{{Kind: KindFramework, Values: []string{"vue"}}}},
	})

	require.Len(t, extended.Rules, len(base.Rules)+1)
	require.Equal(t, "override", extended.Describe("devex-agent"))
	require.Equal(t, "brand new", extended.Describe("custom-agent"))

	// base table untouched
	require.Equal(t, "Detected team-scale repository", base.Describe("devex-agent"))
}
