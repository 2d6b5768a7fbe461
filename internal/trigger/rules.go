// Package trigger holds the declarative agent rule table and the evaluator
// that decides which review agents a repository should enable.
package trigger

// PredicateKind discriminates the typed trigger predicate variants.
type PredicateKind string

const (
	// KindFilePattern matches any scanned path against glob-style patterns.
	KindFilePattern PredicateKind = "file_pattern"
	// KindFileType matches file extensions present in the scan.
	KindFileType PredicateKind = "file_type"
	// KindRequiredFile matches specific files or markers present in the tree.
	KindRequiredFile PredicateKind = "required_file"
	// KindFramework matches membership in the detected framework set.
	KindFramework PredicateKind = "framework"
	// KindKeyword matches tokens against the stringified framework set. This
	// is a deliberately weak metadata-only signal, never a content scan.
	KindKeyword PredicateKind = "keyword"
	// KindTechKeyword matches tech-stack tokens against the same string.
	KindTechKeyword PredicateKind = "tech_keyword"
	// KindPatternsAll requires every listed structural pattern tag.
	KindPatternsAll PredicateKind = "patterns_all"
	// KindMinFiles requires a minimum scanned file count.
	KindMinFiles PredicateKind = "min_files"
	// KindMinDeps requires a minimum combined dependency count.
	KindMinDeps PredicateKind = "min_deps"
	// KindMinContributors requires a minimum distinct-contributor count.
	KindMinContributors PredicateKind = "min_contributors"
	// KindIndicator matches named boolean indicators on the snapshot.
	KindIndicator PredicateKind = "indicator"
)

// kindRank fixes the evaluation priority so the reported reason is
// reproducible for a given snapshot regardless of rule authoring order.
var kindRank = map[PredicateKind]int{
	KindFilePattern:     0,
	KindFileType:        1,
	KindRequiredFile:    2,
	KindFramework:       3,
	KindKeyword:         4,
	KindTechKeyword:     5,
	KindPatternsAll:     6,
	KindMinFiles:        7,
	KindMinDeps:         8,
	KindMinContributors: 9,
	KindIndicator:       10,
}

// Predicate is one testable condition over the snapshot. A rule is satisfied
// when any of its predicates is: weak signals are enough to recommend an
// advisory agent, since a false positive costs one extra advisory voice while
// a false negative drops a safety check.
type Predicate struct {
	Kind      PredicateKind `yaml:"kind"`
	Values    []string      `yaml:"values,omitempty"`
	Threshold int           `yaml:"threshold,omitempty"`
	// Reason overrides the rule description when this predicate fires.
	Reason string `yaml:"reason,omitempty"`
}

// Rule declares one optional agent and its trigger predicates.
type Rule struct {
	Agent       string      `yaml:"agent"`
	Description string      `yaml:"description"`
	Predicates  []Predicate `yaml:"predicates"`
}

// Table pairs the always-enabled default agents with the optional rules.
type Table struct {
	Defaults []string
	Rules    []Rule
}

// DefaultReason is attached to every default agent decision.
const DefaultReason = "Default agent (enabled for all codebases)"

// Builtin returns the built-in rule table. The slice order is the report and
// evaluation order; do not reorder casually.
func Builtin() Table {
	return Table{
		Defaults: []string{
			"data-agent",
			"logic-agent",
			"test-agent",
			"security-agent",
			"infra-agent",
			"doc-agent",
		},
		Rules: []Rule{
			{
				Agent:       "performance-agent",
				Description: "Detected API/backend services or performance-critical code",
				Predicates: []Predicate{
					{Kind: KindFilePattern, Values: []string{"*/api/*", "*/backend/*", "*/pipeline/*"}},
					{Kind: KindFileType, Values: []string{".go", ".rs", ".cpp"}},
					{Kind: KindKeyword, Values: []string{"performance", "optimization", "profiling", "benchmark"}},
				},
			},
			{
				Agent:       "refactor-agent",
				Description: "Detected mature codebase that could benefit from refactoring",
				Predicates: []Predicate{
					{Kind: KindMinFiles, Threshold: 50, Reason: "Large codebase detected (refactoring recommended)"},
				},
			},
			{
				Agent:       "observability-agent",
				Description: "Detected observability or distributed systems patterns",
				Predicates: []Predicate{
					{Kind: KindFilePattern, Values: []string{"*/logging/*", "*/monitoring/*", "*/metrics/*"}},
					{Kind: KindFramework, Values: []string{"prometheus", "datadog", "newrelic", "sentry"}},
					{Kind: KindKeyword, Values: []string{"logger", "metrics", "trace", "span", "observability"}},
					{Kind: KindPatternsAll, Values: []string{"api", "docker"}, Reason: "Detected containerized API service"},
				},
			},
			{
				Agent:       "research-agent",
				Description: "Detected fast-moving tech stack (AI/ML)",
				Predicates: []Predicate{
					{Kind: KindTechKeyword, Values: []string{"ml", "ai", "pytorch", "tensorflow", "transformers"}},
					{Kind: KindMinDeps, Threshold: 20, Reason: "Detected large dependency surface"},
				},
			},
			{
				Agent:       "devex-agent",
				Description: "Detected team-scale repository",
				Predicates: []Predicate{
					{Kind: KindMinContributors, Threshold: 3},
				},
			},
			{
				Agent:       "ux-accessibility-agent",
				Description: "Detected frontend/UI project",
				Predicates: []Predicate{
					{Kind: KindFilePattern, Values: []string{"*/components/*", "*/ui/*", "*/pages/*"}},
					{Kind: KindFileType, Values: []string{".jsx", ".tsx", ".vue"}},
					{Kind: KindFramework, Values: []string{"react", "vue", "angular", "svelte"}},
				},
			},
			{
				Agent:       "error-handling-agent",
				Description: "Detected production codebase",
				Predicates: []Predicate{
					{Kind: KindKeyword, Values: []string{"try", "catch", "error", "exception", "handle"}},
					{Kind: KindIndicator, Values: []string{"production_code"}},
				},
			},
			{
				Agent:       "dependency-agent",
				Description: "Detected package manager with dependencies",
				Predicates: []Predicate{
					{Kind: KindRequiredFile, Values: []string{"package.json", "requirements.txt", "Cargo.toml", "go.mod", "Gemfile"}},
					{Kind: KindMinDeps, Threshold: 10},
				},
			},
			{
				Agent:       "build-agent",
				Description: "Detected CI/CD pipelines",
				Predicates: []Predicate{
					{Kind: KindRequiredFile, Values: []string{".github/workflows", ".gitlab-ci.yml", "Jenkinsfile", ".circleci"}},
					{Kind: KindKeyword, Values: []string{"ci", "cd", "pipeline", "workflow"}},
				},
			},
			{
				Agent:       "cost-agent",
				Description: "Detected cloud/serverless infrastructure",
				Predicates: []Predicate{
					{Kind: KindFilePattern, Values: []string{"*/cloud/*", "*/aws/*", "*/gcp/*", "*/azure/*"}},
					{Kind: KindRequiredFile, Values: []string{"serverless.yml"}},
					{Kind: KindKeyword, Values: []string{"serverless", "lambda", "cloud", "aws", "gcp"}},
				},
			},
			{
				Agent:       "knowledge-agent",
				Description: "Detected documentation system",
				Predicates: []Predicate{
					{Kind: KindFilePattern, Values: []string{"*/docs/*", "*/wiki/*"}},
				},
			},
			{
				Agent:       "ethics-compliance-agent",
				Description: "Detected compliance requirements",
				Predicates: []Predicate{
					{Kind: KindFilePattern, Values: []string{"*/compliance/*", "*/legal/*"}},
					{Kind: KindKeyword, Values: []string{"gdpr", "hipaa", "pci", "compliance", "privacy", "regulation"}},
				},
			},
			{
				Agent:       "benchmark-agent",
				Description: "Detected benchmark or performance testing",
				Predicates: []Predicate{
					{Kind: KindFilePattern, Values: []string{"*/benchmark/*", "*/perf/*"}},
					{Kind: KindKeyword, Values: []string{"benchmark", "performance", "profiling"}},
				},
			},
			{
				Agent:       "security-redteam-agent",
				Description: "Detected customer-facing or public services",
				Predicates: []Predicate{
					{Kind: KindKeyword, Values: []string{"api", "endpoint", "public", "external"}},
					{Kind: KindIndicator, Values: []string{"public_api"}},
				},
			},
		},
	}
}

// Extend returns a copy of the table with extra rules appended. A rule whose
// agent id matches an existing one replaces it in place, keeping order stable.
func (t Table) Extend(rules []Rule) Table {
	out := Table{Defaults: t.Defaults, Rules: make([]Rule, len(t.Rules))}
	copy(out.Rules, t.Rules)
	for _, r := range rules {
		replaced := false
		for i := range out.Rules {
			if out.Rules[i].Agent == r.Agent {
				out.Rules[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			out.Rules = append(out.Rules, r)
		}
	}
	return out
}

// Describe returns the description for an agent id, empty when unknown.
func (t Table) Describe(agent string) string {
	for _, r := range t.Rules {
		if r.Agent == agent {
			return r.Description
		}
	}
	return ""
}
