package signal

import "github.com/agentscope/agentscope/internal/scan"

// markerPaths are rule-table marker files that live inside directories the
// scanner ignores, so their presence is checked directly.
var markerPaths = []string{".github/workflows", ".circleci"}

// CollectMarkers returns the marker paths present under the scan root.
func CollectMarkers(s *scan.Scanner) []string {
	var present []string
	for _, m := range markerPaths {
		if s.Exists(m) {
			present = append(present, m)
		}
	}
	return present
}

// CollectIndicators precomputes the named boolean indicators so the trigger
// evaluator stays a pure function of the snapshot.
func CollectIndicators(s *scan.Scanner, patterns PatternsResult, activity ActivityResult) map[string]bool {
	indicators := make(map[string]bool)
	if s.Exists("Dockerfile") || s.Exists(".github/workflows") {
		indicators["production_code"] = true
	}
	if patterns.Tags["api"] {
		indicators["public_api"] = true
	}
	if activity.Contributors >= 3 {
		indicators["multiple_contributors"] = true
	}
	return indicators
}
