package rules

import (
	"github.com/platinummonkey/contentlint/pkg/linter"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleID          string
	RuleName        string
	RuleTags        []string
	RuleSeverity    linter.Severity
	RuleDescription string
}

func (r *BaseRule) ID() string                { return r.RuleID }
func (r *BaseRule) Name() string              { return r.RuleName }
func (r *BaseRule) Tags() []string            { return r.RuleTags }
func (r *BaseRule) Severity() linter.Severity { return r.RuleSeverity }
func (r *BaseRule) Description() string       { return r.RuleDescription }
