package trigger

import (
	"sort"
	"strings"

	"github.com/agentscope/agentscope/internal/signal"
)

// Decision is the outcome for one agent.
type Decision struct {
	Enabled bool
	Reason  string
}

// Evaluation maps every considered agent to its decision and keeps the
// ordered groupings the report renders.
type Evaluation struct {
	Decisions map[string]Decision
	// Defaults lists the always-enabled agents in table order.
	Defaults []string
	// EnabledOptional lists optional agents that triggered, in table order.
	EnabledOptional []string
	// Considered lists optional agents that did not trigger, in table order.
	Considered []string
}

// EnabledAgents returns defaults plus enabled optional agents, in order.
func (e Evaluation) EnabledAgents() []string {
	out := make([]string, 0, len(e.Defaults)+len(e.EnabledOptional))
	out = append(out, e.Defaults...)
	out = append(out, e.EnabledOptional...)
	return out
}

// Evaluate computes the enabled agent set from a snapshot and a rule table.
// It is a pure function: no I/O, fully deterministic for identical inputs.
func Evaluate(snap signal.Snapshot, table Table) Evaluation {
	eval := Evaluation{Decisions: make(map[string]Decision, len(table.Defaults)+len(table.Rules))}

	for _, agent := range table.Defaults {
		eval.Decisions[agent] = Decision{Enabled: true, Reason: DefaultReason}
		eval.Defaults = append(eval.Defaults, agent)
	}

	for _, rule := range table.Rules {
		if reason, ok := evaluateRule(snap, rule); ok {
			eval.Decisions[rule.Agent] = Decision{Enabled: true, Reason: reason}
			eval.EnabledOptional = append(eval.EnabledOptional, rule.Agent)
		} else {
			eval.Decisions[rule.Agent] = Decision{}
			eval.Considered = append(eval.Considered, rule.Agent)
		}
	}

	return eval
}

// evaluateRule tests predicates in the fixed priority order and stops at the
// first satisfied one; its reason is the emitted justification.
func evaluateRule(snap signal.Snapshot, rule Rule) (string, bool) {
	preds := make([]Predicate, len(rule.Predicates))
	copy(preds, rule.Predicates)
	sort.SliceStable(preds, func(i, j int) bool {
		return kindRank[preds[i].Kind] < kindRank[preds[j].Kind]
	})

	for _, p := range preds {
		if !satisfied(snap, p) {
			continue
		}
		if p.Reason != "" {
			return p.Reason, true
		}
		return rule.Description, true
	}
	return "", false
}

// satisfied dispatches one typed predicate against the snapshot.
func satisfied(snap signal.Snapshot, p Predicate) bool {
	switch p.Kind {
	case KindFilePattern:
		for _, pattern := range p.Values {
			if snap.MatchesGlob(pattern) {
				return true
			}
		}
	case KindFileType:
		for _, ext := range p.Values {
			if snap.HasExtension(ext) {
				return true
			}
		}
	case KindRequiredFile:
		for _, name := range p.Values {
			if snap.HasFile(name) {
				return true
			}
		}
	case KindFramework:
		for _, tag := range p.Values {
			if snap.HasFramework(tag) {
				return true
			}
		}
	case KindKeyword, KindTechKeyword:
		// metadata-only: matched against the stringified framework set
		haystack := snap.FrameworkString()
		for _, kw := range p.Values {
			if strings.Contains(haystack, strings.ToLower(kw)) {
				return true
			}
		}
	case KindPatternsAll:
		if len(p.Values) == 0 {
			return false
		}
		for _, tag := range p.Values {
			if !snap.HasPattern(tag) {
				return false
			}
		}
		return true
	case KindMinFiles:
		return snap.FileCount >= p.Threshold
	case KindMinDeps:
		return snap.DependencyCount >= p.Threshold
	case KindMinContributors:
		return snap.ContributorCount >= p.Threshold
	case KindIndicator:
		for _, name := range p.Values {
			if snap.HasIndicator(name) {
				return true
			}
		}
	}
	return false
}
