package trigger

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of a user rule file:
//
//	agents:
//	  - agent: my-agent
//	    description: Detected my thing
//	    predicates:
//	      - kind: framework
//	        values: [react]
type ruleFile struct {
	Agents []Rule `yaml:"agents"`
}

// ParseRules decodes and validates a rule file payload. Unlike manifests, a
// rule file is explicit user input, so malformed content is a real error.
func ParseRules(data []byte) ([]Rule, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("rules: file is empty")
	}
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("rules: decode: %w", err)
	}
	for i, rule := range rf.Agents {
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("rules: agent %d: %w", i, err)
		}
	}
	return rf.Agents, nil
}

// LoadRuleFile reads extra agent rules from a YAML file. An empty path means
// no user rules.
func LoadRuleFile(path string) ([]Rule, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: read %s: %w", path, err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules: %s: %w", path, err)
	}
	return rules, nil
}

func validateRule(rule Rule) error {
	if strings.TrimSpace(rule.Agent) == "" {
		return fmt.Errorf("agent id is required")
	}
	if strings.TrimSpace(rule.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if len(rule.Predicates) == 0 {
		return fmt.Errorf("at least one predicate is required")
	}
	for _, p := range rule.Predicates {
		if _, ok := kindRank[p.Kind]; !ok {
			return fmt.Errorf("unknown predicate kind %q", p.Kind)
		}
		switch p.Kind {
		case KindMinFiles, KindMinDeps, KindMinContributors:
			if p.Threshold <= 0 {
				return fmt.Errorf("predicate %s needs a positive threshold", p.Kind)
			}
		default:
			if len(p.Values) == 0 {
				return fmt.Errorf("predicate %s needs values", p.Kind)
			}
		}
	}
	return nil
}
