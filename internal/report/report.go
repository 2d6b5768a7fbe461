// Package report renders a detection result for humans and for the templating
// consumers downstream, which branch only on the structured Record and never
// re-derive signals themselves.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentscope/agentscope/internal/signal"
	"github.com/agentscope/agentscope/internal/trigger"
)

// Record is the machine-readable detection result. It is the sole contract
// between the detection core and every downstream file-generation step.
type Record struct {
	RunID            string            `json:"run_id"`
	GeneratedAt      time.Time         `json:"generated_at"`
	Languages        map[string]int    `json:"languages"`
	Frameworks       []string          `json:"frameworks"`
	Patterns         []string          `json:"patterns"`
	FileCount        int               `json:"file_count"`
	LineCount        int               `json:"line_count"`
	ContributorCount int               `json:"contributor_count"`
	DependencyCount  int               `json:"dependency_count"`
	EnabledAgents    []string          `json:"enabled_agents"`
	Reasons          map[string]string `json:"reasons"`
}

// NewRecord builds the structured record from a snapshot and its evaluation.
func NewRecord(snap signal.Snapshot, eval trigger.Evaluation) Record {
	reasons := make(map[string]string, len(eval.Decisions))
	for agent, d := range eval.Decisions {
		if d.Enabled {
			reasons[agent] = d.Reason
		}
	}
	return Record{
		RunID:            uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		Languages:        snap.Languages,
		Frameworks:       snap.SortedFrameworks(),
		Patterns:         snap.SortedPatterns(),
		FileCount:        snap.FileCount,
		LineCount:        snap.LineCount,
		ContributorCount: snap.ContributorCount,
		DependencyCount:  snap.DependencyCount,
		EnabledAgents:    eval.EnabledAgents(),
		Reasons:          reasons,
	}
}

// Render formats the human-readable analysis report: signals first, then the
// default, enabled-optional, and available-but-not-enabled agent groups.
func Render(snap signal.Snapshot, eval trigger.Evaluation, table trigger.Table) string {
	var b strings.Builder

	b.WriteString("Codebase Analysis Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("Languages detected:\n")
	for _, lc := range snap.LanguagesByCount() {
		fmt.Fprintf(&b, "  - %s: %d files\n", lc.Language, lc.Count)
	}
	b.WriteString("\n")

	if frameworks := snap.SortedFrameworks(); len(frameworks) > 0 {
		b.WriteString("Frameworks detected:\n")
		for _, fw := range frameworks {
			fmt.Fprintf(&b, "  - %s\n", fw)
		}
		b.WriteString("\n")
	}

	if patterns := snap.SortedPatterns(); len(patterns) > 0 {
		b.WriteString("Patterns detected:\n")
		for _, p := range patterns {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
		b.WriteString("\n")
	}

	b.WriteString("Repository metrics:\n")
	fmt.Fprintf(&b, "  - Files: %d\n", snap.FileCount)
	fmt.Fprintf(&b, "  - Lines: %d\n", snap.LineCount)
	fmt.Fprintf(&b, "  - Dependencies: %d\n", snap.DependencyCount)
	fmt.Fprintf(&b, "  - Contributors: %d\n", snap.ContributorCount)
	b.WriteString("\n")

	b.WriteString("Enabled agents:\n\n")

	b.WriteString("  Default agents (always enabled):\n")
	for _, agent := range eval.Defaults {
		fmt.Fprintf(&b, "    [x] %s\n", agent)
	}
	b.WriteString("\n")

	if len(eval.EnabledOptional) > 0 {
		b.WriteString("  Optional agents (detected):\n")
		for _, agent := range eval.EnabledOptional {
			fmt.Fprintf(&b, "    [x] %s\n", agent)
			fmt.Fprintf(&b, "        -> %s\n", eval.Decisions[agent].Reason)
		}
		b.WriteString("\n")
	}

	if len(eval.Considered) > 0 {
		b.WriteString("  Agents considered but not enabled:\n")
		for _, agent := range sortedCopy(eval.Considered) {
			fmt.Fprintf(&b, "    [ ] %s\n", agent)
			if desc := table.Describe(agent); desc != "" {
				fmt.Fprintf(&b, "        -> %s\n", desc)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
