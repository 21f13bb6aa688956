package linter

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the linting configuration
type Config struct {
	Version string    `yaml:"version"`
	Lint    LintRules `yaml:"lint"`
}

// LintRules contains rule configuration
type LintRules struct {
	Use    []string              `yaml:"use"`    // rule IDs/names to enable, or "all"
	Rules  map[string]RuleConfig `yaml:"rules"`  // per-rule overrides, keyed by ID or name
	Ignore []string              `yaml:"ignore"` // path globs to skip
	Files  []string              `yaml:"files"`  // path globs to lint (empty = all)
}

// RuleConfig contains per-rule overrides
type RuleConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Severity string `yaml:"severity,omitempty"`
}

// DefaultConfig returns default linting configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "v1",
		Lint: LintRules{
			Use:    []string{"all"},
			Rules:  make(map[string]RuleConfig),
			Ignore: []string{"**/node_modules/**", "**/vendor/**"},
			Files:  []string{"**/*.md", "**/*.mdx"},
		},
	}
}

// RuleEnabled reports whether config enables the given rule. An explicit
// per-rule enabled flag wins over the use list.
func (c *Config) RuleEnabled(rule Rule) bool {
	if rc, ok := c.ruleConfig(rule); ok && rc.Enabled != nil {
		return *rc.Enabled
	}

	if len(c.Lint.Use) == 0 {
		return true
	}
	for _, use := range c.Lint.Use {
		if use == "all" || use == rule.ID() || use == rule.Name() {
			return true
		}
	}
	return false
}

// SeverityOverride returns the configured severity for a rule, if any
func (c *Config) SeverityOverride(rule Rule) (Severity, bool) {
	rc, ok := c.ruleConfig(rule)
	if !ok || rc.Severity == "" {
		return "", false
	}
	return Severity(rc.Severity), true
}

func (c *Config) ruleConfig(rule Rule) (RuleConfig, bool) {
	if rc, ok := c.Lint.Rules[rule.ID()]; ok {
		return rc, true
	}
	rc, ok := c.Lint.Rules[rule.Name()]
	return rc, ok
}

// IsIgnored reports whether path matches any ignore glob
func (c *Config) IsIgnored(path string) bool {
	for _, pattern := range c.Lint.Ignore {
		if matchGlob(pattern, path) {
			return true
		}
	}
	return false
}

// MatchesFiles reports whether path matches the include globs. An empty
// include list matches everything.
func (c *Config) MatchesFiles(path string) bool {
	if len(c.Lint.Files) == 0 {
		return true
	}
	for _, pattern := range c.Lint.Files {
		if matchGlob(pattern, path) {
			return true
		}
	}
	return false
}

// UnknownRules returns configured rule references that match no registered
// rule
func (c *Config) UnknownRules(registry *RuleRegistry) []string {
	seen := make(map[string]bool)

	for _, use := range c.Lint.Use {
		if use == "all" {
			continue
		}
		if _, ok := registry.GetRule(use); !ok {
			seen[use] = true
		}
	}
	for name := range c.Lint.Rules {
		if _, ok := registry.GetRule(name); !ok {
			seen[name] = true
		}
	}

	unknown := make([]string, 0, len(seen))
	for name := range seen {
		unknown = append(unknown, name)
	}
	sort.Strings(unknown)
	return unknown
}

// matchGlob matches path against a slash-separated glob where "**" spans
// directory separators and "*" stays within one segment.
func matchGlob(pattern, path string) bool {
	pat := strings.Split(filepath.ToSlash(pattern), "/")
	parts := strings.Split(filepath.ToSlash(path), "/")
	return matchSegments(pat, parts)
}

func matchSegments(pat, parts []string) bool {
	if len(pat) == 0 {
		return len(parts) == 0
	}
	if pat[0] == "**" {
		if matchSegments(pat[1:], parts) {
			return true
		}
		if len(parts) == 0 {
			return false
		}
		return matchSegments(pat, parts[1:])
	}
	if len(parts) == 0 {
		return false
	}
	if ok, err := filepath.Match(pat[0], parts[0]); err != nil || !ok {
		return false
	}
	return matchSegments(pat[1:], parts[1:])
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.Lint.Rules == nil {
		config.Lint.Rules = make(map[string]RuleConfig)
	}

	return &config, nil
}

// LoadConfigFromDir searches for a config file in directory
func LoadConfigFromDir(dir string) (*Config, error) {
	configNames := []string{".contentlint.yaml", ".contentlint.yml", "contentlint.yaml"}

	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}

	// Return default if no config found
	return DefaultConfig(), nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
