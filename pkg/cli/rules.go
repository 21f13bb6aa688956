package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/platinummonkey/contentlint/pkg/linter"
	"github.com/platinummonkey/contentlint/pkg/linter/rules"
)

// newRulesCommand creates the rules listing command
func newRulesCommand() *Command {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	tag := fs.String("tag", "", "Only show rules carrying this tag")

	return &Command{
		Name:        "rules",
		Description: "List available lint rules",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			return runRules(os.Stdout, *tag)
		},
	}
}

func runRules(out io.Writer, tag string) error {
	all := rules.DefaultRules()
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })

	shown := make([]linter.Rule, 0, len(all))
	for _, rule := range all {
		if tag != "" && !hasTag(rule, tag) {
			continue
		}
		shown = append(shown, rule)
	}

	fmt.Fprintf(out, "Available lint rules (%d):\n\n", len(shown))
	for _, rule := range shown {
		fmt.Fprintf(out, "  %s %-25s [%s]\n    %s\n",
			rule.ID(),
			rule.Name(),
			rule.Severity(),
			rule.Description(),
		)
		if len(rule.Tags()) > 0 {
			fmt.Fprintf(out, "    tags: %s\n", strings.Join(rule.Tags(), ", "))
		}
		fmt.Fprintln(out)
	}

	return nil
}

func hasTag(rule linter.Rule, tag string) bool {
	for _, t := range rule.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}
