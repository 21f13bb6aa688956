package linter

import (
	"fmt"
	"sort"

	"github.com/platinummonkey/contentlint/pkg/document"
)

// Rule interface that all lint rules must implement. ID, Name, Tags,
// Severity and Description are metadata surfaced to hosts; Check does the
// work.
type Rule interface {
	ID() string
	Name() string
	Tags() []string
	Severity() Severity
	Description() string
	Check(doc *document.Document) []Violation
}

// RuleRegistry manages available lint rules
type RuleRegistry struct {
	byID   map[string]Rule
	byName map[string]Rule
}

// NewRuleRegistry creates a new rule registry
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		byID:   make(map[string]Rule),
		byName: make(map[string]Rule),
	}
}

// Register adds a rule to the registry, rejecting duplicate IDs or names
func (r *RuleRegistry) Register(rule Rule) error {
	if _, ok := r.byID[rule.ID()]; ok {
		return fmt.Errorf("rule ID %q already registered", rule.ID())
	}
	if _, ok := r.byName[rule.Name()]; ok {
		return fmt.Errorf("rule name %q already registered", rule.Name())
	}

	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
	return nil
}

// GetRule retrieves a rule by ID or name
func (r *RuleRegistry) GetRule(idOrName string) (Rule, bool) {
	if rule, ok := r.byID[idOrName]; ok {
		return rule, true
	}
	rule, ok := r.byName[idOrName]
	return rule, ok
}

// GetAllRules returns all registered rules sorted by ID
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.byID))
	for _, rule := range r.byID {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID() < rules[j].ID()
	})
	return rules
}

// GetEnabledRules returns rules enabled by config, sorted by ID
func (r *RuleRegistry) GetEnabledRules(config *Config) []Rule {
	rules := make([]Rule, 0, len(r.byID))
	for _, rule := range r.GetAllRules() {
		if config.RuleEnabled(rule) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// GetRulesByTag returns rules carrying the given tag, sorted by ID
func (r *RuleRegistry) GetRulesByTag(tag string) []Rule {
	rules := make([]Rule, 0)
	for _, rule := range r.GetAllRules() {
		for _, t := range rule.Tags() {
			if t == tag {
				rules = append(rules, rule)
				break
			}
		}
	}
	return rules
}
