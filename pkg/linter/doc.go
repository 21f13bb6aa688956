// Package linter provides the rule framework for linting content documents.
//
// # Overview
//
// This package applies configurable rules to parsed documents and collects
// positioned violations. Rules are registered on a RuleRegistry, selected
// and tuned through a YAML Config, and run by a LintEngine one document at
// a time.
//
// # Rule Identity
//
// Every rule exposes a stable ID ("CL001"), a human-readable name
// ("table-column-integrity"), a tag set, a severity, and a description.
// Hosts use the ID/name pair in configuration and in reported violations.
//
// # Usage Example
//
//	config, _ := linter.LoadConfigFromDir(".")
//	engine := linter.NewLintEngine(config)
//	for _, rule := range rules.DefaultRules() {
//		engine.Registry().Register(rule)
//	}
//
//	doc, _ := document.Parse("docs/branches.md", content)
//	result := engine.Lint("docs/branches.md", doc)
//
//	fmt.Printf("%d errors, %d warnings\n",
//		result.Summary.Errors, result.Summary.Warnings)
//
// # Concurrency
//
// An engine invocation processes one document with no shared mutable scan
// state, so hosts may lint many documents concurrently with the same
// engine.
//
// # Related Packages
//
//   - pkg/document: the parsed document model rules check
//   - pkg/linter/rules: the built-in rules
package linter
