package rules

import (
	"github.com/platinummonkey/contentlint/pkg/linter"
)

// Registry interface for registering rules
type Registry interface {
	Register(rule linter.Rule) error
}

// RegisterDefaultRules registers all built-in lint rules
func RegisterDefaultRules(registry Registry) error {
	for _, rule := range DefaultRules() {
		if err := registry.Register(rule); err != nil {
			return err
		}
	}
	return nil
}

// DefaultRules returns fresh instances of all built-in rules
func DefaultRules() []linter.Rule {
	return []linter.Rule{
		NewTableColumnIntegrityRule(),
	}
}
