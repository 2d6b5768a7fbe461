package signal

import "strings"

// frameworkIndicator maps a framework tag to the dependency-name token that
// implies it. Matching is substring containment on normalized dependency
// names; precise version resolution is out of scope.
type frameworkIndicator struct {
	Tag   string
	Token string
}

// manifestIndicators scopes indicator tokens per manifest format so that e.g.
// a Go module containing "gin" is not confused with an npm package.
var manifestIndicators = map[string][]frameworkIndicator{
	"package.json": {
		{"react", "react"}, {"vue", "vue"}, {"angular", "@angular"},
		{"express", "express"}, {"next", "next"}, {"nest", "@nestjs"},
		{"fastify", "fastify"}, {"koa", "koa"},
	},
	"requirements.txt": {
		{"django", "django"}, {"flask", "flask"}, {"fastapi", "fastapi"},
		{"pytorch", "torch"}, {"tensorflow", "tensorflow"}, {"pandas", "pandas"},
		{"numpy", "numpy"}, {"scikit", "scikit"}, {"keras", "keras"},
		{"transformers", "transformers"},
	},
	"Gemfile": {
		{"rails", "rails"}, {"sinatra", "sinatra"},
	},
	"go.mod": {
		{"gin", "gin"}, {"echo", "echo"}, {"fiber", "fiber"}, {"gorilla", "gorilla"},
	},
	"Cargo.toml": {
		{"actix", "actix"}, {"rocket", "rocket"}, {"warp", "warp"}, {"tokio", "tokio"},
	},
	"composer.json": {
		{"laravel", "laravel/framework"}, {"symfony", "symfony/symfony"},
	},
}

// FrameworksResult is the framework/dependency collector's facet of the
// snapshot: normalized framework tags plus the combined dependency set size.
type FrameworksResult struct {
	Tags            map[string]bool
	DependencyCount int
}

// CollectFrameworks derives framework tags and the combined dependency count
// from parsed manifests (filename -> dependency names).
func CollectFrameworks(manifests map[string][]string) FrameworksResult {
	tags := make(map[string]bool)
	union := make(map[string]bool)

	for manifest, deps := range manifests {
		for _, dep := range deps {
			union[dep] = true
		}
		for _, ind := range manifestIndicators[manifest] {
			for _, dep := range deps {
				if strings.Contains(dep, ind.Token) {
					tags[ind.Tag] = true
					break
				}
			}
		}
	}

	return FrameworksResult{Tags: tags, DependencyCount: len(union)}
}
