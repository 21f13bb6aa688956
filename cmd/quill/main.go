// quill watches a documentation tree and relints Markdown files as they
// change, printing violations as they are introduced. It is meant to run
// next to an editor during authoring.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/contentlint/pkg/async"
	"github.com/platinummonkey/contentlint/pkg/document"
	"github.com/platinummonkey/contentlint/pkg/linter"
	"github.com/platinummonkey/contentlint/pkg/linter/rules"
	"github.com/platinummonkey/contentlint/pkg/storage"
)

// lintTimeout bounds one relint of one file
const lintTimeout = 30 * time.Second

func main() {
	dir := flag.String("dir", ".", "Documentation tree to watch")
	configFile := flag.String("config", "", "Path to lint config file (default: search -dir)")
	debounce := flag.Duration("debounce", 500*time.Millisecond, "Delay before relinting a changed file")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	root, err := filepath.Abs(*dir)
	if err != nil {
		logger.Fatalf("Failed to resolve directory: %v", err)
	}

	engine, lintCfg, err := buildEngine(root, *configFile)
	if err != nil {
		logger.Fatalf("Failed to build lint engine: %v", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Fatalf("Failed to create watcher: %v", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, root); err != nil {
		logger.Fatalf("Failed to watch %s: %v", root, err)
	}

	relinter := &relinter{
		engine:   engine,
		config:   lintCfg,
		root:     root,
		logger:   logger,
		debounce: *debounce,
		timers:   make(map[string]*time.Timer),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Infof("Watching %s for Markdown changes", root)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			handleEvent(watcher, relinter, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.WithError(err).Warn("Watcher error")
		case sig := <-quit:
			logger.Infof("Received signal %s, stopping", sig)
			relinter.stop()
			return
		}
	}
}

func handleEvent(watcher *fsnotify.Watcher, r *relinter, event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		// New directories need their own watch to catch files created
		// inside them later.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watchTree(watcher, event.Name); err != nil {
				r.logger.WithError(err).Warnf("Failed to watch new directory %s", event.Name)
			}
			return
		}
	}

	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if !storage.IsLintable(event.Name) {
		return
	}
	r.schedule(event.Name)
}

// watchTree registers the directory and all its subdirectories, skipping
// hidden directories and dependency trees.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func buildEngine(root, configFile string) (*linter.LintEngine, *linter.Config, error) {
	var (
		cfg *linter.Config
		err error
	)
	if configFile != "" {
		cfg, err = linter.LoadConfig(configFile)
	} else {
		cfg, err = linter.LoadConfigFromDir(root)
	}
	if err != nil {
		return nil, nil, err
	}

	engine := linter.NewLintEngine(cfg)
	if err := rules.RegisterDefaultRules(engine.Registry()); err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

// relinter debounces change events per file and lints once the file has
// been quiet for the configured delay.
type relinter struct {
	engine   *linter.LintEngine
	config   *linter.Config
	root     string
	logger   *logrus.Logger
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func (r *relinter) schedule(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if timer, ok := r.timers[path]; ok {
		timer.Reset(r.debounce)
		return
	}
	r.timers[path] = time.AfterFunc(r.debounce, func() {
		r.mu.Lock()
		delete(r.timers, path)
		r.mu.Unlock()
		async.SafeGoNoError(context.Background(), lintTimeout, "relint "+path, func(ctx context.Context) {
			r.lint(path)
		})
	})
}

func (r *relinter) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for path, timer := range r.timers {
		timer.Stop()
		delete(r.timers, path)
	}
}

func (r *relinter) lint(path string) {
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	if !r.config.MatchesFiles(rel) {
		r.logger.WithField("file", rel).Debug("Ignored by lint config")
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Editors often write via rename; the original path can be
			// gone by the time the debounce fires.
			return
		}
		r.logger.WithError(err).WithField("file", rel).Warn("Failed to read file")
		return
	}

	doc, err := document.Parse(rel, content)
	if err != nil {
		r.logger.WithError(err).WithField("file", rel).Debug("Front matter decode failed, linting body anyway")
	}

	result := r.engine.Lint(rel, doc)
	if result.Skipped {
		r.logger.WithField("file", rel).Debug("Skipped")
		return
	}
	if len(result.Violations) == 0 {
		r.logger.WithField("file", rel).Info("Clean")
		return
	}

	for _, v := range result.Violations {
		fields := logrus.Fields{
			"file": rel,
			"line": v.Line,
			"rule": v.RuleID,
		}
		switch v.Severity {
		case linter.SeverityError:
			r.logger.WithFields(fields).Error(v.Message)
		case linter.SeverityWarning:
			r.logger.WithFields(fields).Warn(v.Message)
		default:
			r.logger.WithFields(fields).Info(v.Message)
		}
	}
}
