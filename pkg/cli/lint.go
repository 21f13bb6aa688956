package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/platinummonkey/contentlint/pkg/document"
	"github.com/platinummonkey/contentlint/pkg/linter"
	"github.com/platinummonkey/contentlint/pkg/linter/rules"
	"github.com/platinummonkey/contentlint/pkg/storage"
)

type lintOptions struct {
	dir           string
	configFile    string
	format        string
	ruleFilter    string
	jobs          int
	failOnError   bool
	failOnWarning bool
	verbose       bool
}

// newLintCommand creates a new lint command
func newLintCommand() *Command {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)

	opts := lintOptions{}
	fs.StringVar(&opts.dir, "dir", ".", "Directory containing Markdown files")
	fs.StringVar(&opts.configFile, "config", "", "Path to lint config file (.contentlint.yaml)")
	fs.StringVar(&opts.format, "format", "text", "Output format: text, json, github")
	fs.StringVar(&opts.ruleFilter, "rules", "", "Comma-separated rule IDs to run (default: config)")
	fs.IntVar(&opts.jobs, "jobs", runtime.NumCPU(), "Number of documents to lint concurrently")
	fs.BoolVar(&opts.failOnError, "fail-on-error", true, "Exit with error code on lint errors")
	fs.BoolVar(&opts.failOnWarning, "fail-on-warning", false, "Exit with error code on lint warnings")
	fs.BoolVar(&opts.verbose, "verbose", false, "Verbose output")

	return &Command{
		Name:        "lint",
		Description: "Lint Markdown documents for content quality",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			// A positional path wins over -dir.
			if fs.NArg() > 0 {
				opts.dir = fs.Arg(0)
			}
			return runLint(os.Stdout, opts)
		},
	}
}

func runLint(out io.Writer, opts lintOptions) error {
	config, err := loadLintConfig(opts.configFile, opts.dir)
	if err != nil {
		return err
	}
	if opts.ruleFilter != "" {
		config.Lint.Use = strings.Split(opts.ruleFilter, ",")
	}

	engine := linter.NewLintEngine(config)
	if err := rules.RegisterDefaultRules(engine.Registry()); err != nil {
		return fmt.Errorf("failed to register rules: %w", err)
	}

	if unknown := config.UnknownRules(engine.Registry()); len(unknown) > 0 {
		fmt.Fprintf(out, "Warning: config references unknown rules: %s\n", strings.Join(unknown, ", "))
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if opts.verbose {
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
	}

	source, err := storage.NewFilesystemSource(opts.dir, logger)
	if err != nil {
		return err
	}

	ctx := context.Background()
	paths, err := source.List(ctx)
	if err != nil {
		return err
	}

	lintable := make([]string, 0, len(paths))
	for _, path := range paths {
		if config.MatchesFiles(path) {
			lintable = append(lintable, path)
		}
	}

	if len(lintable) == 0 {
		fmt.Fprintf(out, "No Markdown files found in %s\n", opts.dir)
		return nil
	}

	if opts.verbose {
		fmt.Fprintf(out, "Linting %d documents...\n", len(lintable))
	}

	results, err := lintPaths(ctx, engine, source, lintable, opts.jobs)
	if err != nil {
		return err
	}

	summary := engine.GenerateSummary(results)

	switch opts.format {
	case "json":
		if err := lintOutputJSON(out, results, summary); err != nil {
			return err
		}
	case "github":
		lintOutputGitHub(out, results)
	default:
		lintOutputText(out, results, summary)
	}

	if opts.failOnError && summary.Errors > 0 {
		return fmt.Errorf("lint failed with %d errors", summary.Errors)
	}
	if opts.failOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("lint failed with %d warnings", summary.Warnings)
	}

	return nil
}

func loadLintConfig(configFile, dir string) (*linter.Config, error) {
	if configFile != "" {
		config, err := linter.LoadConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return config, nil
	}

	config, err := linter.LoadConfigFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config, nil
}

// lintPaths lints documents concurrently, bounded by jobs. Results come
// back in path order.
func lintPaths(ctx context.Context, engine *linter.LintEngine, source storage.ContentSource, paths []string, jobs int) ([]linter.LintResult, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]linter.LintResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			content, err := source.Read(ctx, path)
			if err != nil {
				return err
			}

			// Front-matter decode failures still yield a lintable body.
			doc, _ := document.Parse(path, content)
			results[i] = engine.Lint(path, doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func lintOutputText(out io.Writer, results []linter.LintResult, summary linter.Summary) {
	hasViolations := false

	for _, result := range results {
		if len(result.Violations) == 0 {
			continue
		}

		hasViolations = true
		fmt.Fprintf(out, "\n%s:\n", result.File)

		for _, v := range result.Violations {
			fmt.Fprintf(out, "  %s:%d:%d: [%s] %s (%s)\n",
				result.File,
				v.Line,
				v.Highlight.Start,
				v.RuleID,
				v.Message,
				v.Severity,
			)
		}
	}

	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Summary:\n")
	fmt.Fprintf(out, "  Files:      %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "  Violations: %d\n", summary.TotalViolations)
	fmt.Fprintf(out, "  Errors:     %d\n", summary.Errors)
	fmt.Fprintf(out, "  Warnings:   %d\n", summary.Warnings)
	fmt.Fprintf(out, "  Infos:      %d\n", summary.Infos)

	if !hasViolations {
		fmt.Fprintln(out, "\n✓ All documents passed linting")
	}
}

func lintOutputJSON(out io.Writer, results []linter.LintResult, summary linter.Summary) error {
	output := struct {
		Results []linter.LintResult `json:"results"`
		Summary linter.Summary      `json:"summary"`
	}{
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// lintOutputGitHub prints GitHub Actions annotations:
// ::error file={name},line={line},col={col}::{message}
func lintOutputGitHub(out io.Writer, results []linter.LintResult) {
	for _, result := range results {
		for _, v := range result.Violations {
			level := "error"
			if v.Severity == linter.SeverityWarning {
				level = "warning"
			} else if v.Severity == linter.SeverityInfo {
				level = "notice"
			}

			fmt.Fprintf(out, "::%s file=%s,line=%d,col=%d::[%s] %s\n",
				level,
				result.File,
				v.Line,
				v.Highlight.Start,
				v.RuleID,
				v.Message,
			)
		}
	}
}
