package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/platinummonkey/contentlint/pkg/linter"
	"github.com/platinummonkey/contentlint/pkg/linter/rules"
)

// newValidateCommand creates the config validation command
func newValidateCommand() *Command {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configFile := fs.String("config", ".contentlint.yaml", "Path to lint config file")

	return &Command{
		Name:        "validate",
		Description: "Validate a lint configuration file",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			return runValidate(os.Stdout, *configFile)
		},
	}
}

func runValidate(out io.Writer, configFile string) error {
	config, err := linter.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := linter.NewRuleRegistry()
	if err := rules.RegisterDefaultRules(registry); err != nil {
		return fmt.Errorf("failed to register rules: %w", err)
	}

	if unknown := config.UnknownRules(registry); len(unknown) > 0 {
		return fmt.Errorf("config references unknown rules: %s", strings.Join(unknown, ", "))
	}

	for name, rc := range config.Lint.Rules {
		if rc.Severity == "" {
			continue
		}
		switch linter.Severity(rc.Severity) {
		case linter.SeverityError, linter.SeverityWarning, linter.SeverityInfo:
		default:
			return fmt.Errorf("rule %s has invalid severity %q", name, rc.Severity)
		}
	}

	fmt.Fprintf(out, "✓ %s is valid\n", configFile)
	return nil
}
