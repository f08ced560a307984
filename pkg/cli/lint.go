package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/linter"
	"github.com/platinummonkey/declint/pkg/linter/rules"
	"github.com/platinummonkey/declint/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const sourceExt = ".swift"

type lintOptions struct {
	dir           string
	configFile    string
	format        string
	failOnError   bool
	failOnWarning bool
	verbose       bool
	watch         bool
	debounce      time.Duration
	metricsOut    string
}

// newLintCommand creates a new lint command
func newLintCommand(out io.Writer) *Command {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)

	var (
		dir           = fs.String("dir", ".", "Directory containing source files")
		configFile    = fs.String("config", "", "Path to lint config file (.declint.yml)")
		format        = fs.String("format", "text", "Output format: text, json, github")
		failOnError   = fs.Bool("fail-on-error", true, "Exit with error code on lint errors")
		failOnWarning = fs.Bool("fail-on-warning", false, "Exit with error code on lint warnings")
		verbose       = fs.Bool("verbose", false, "Verbose output")
		watch         = fs.Bool("watch", false, "Re-lint whenever source or structure files change")
		debounce      = fs.Duration("debounce", 500*time.Millisecond, "Quiet period before re-linting in watch mode")
		metricsOut    = fs.String("metrics-out", "", "Write Prometheus metrics in text format to this file")
	)

	return &Command{
		Name:        "lint",
		Description: "Lint source files for style and documentation",
		Flags:       fs,
		out:         out,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return runLint(ctx, out, lintOptions{
				dir:           *dir,
				configFile:    *configFile,
				format:        *format,
				failOnError:   *failOnError,
				failOnWarning: *failOnWarning,
				verbose:       *verbose,
				watch:         *watch,
				debounce:      *debounce,
				metricsOut:    *metricsOut,
			})
		},
	}
}

func runLint(ctx context.Context, out io.Writer, opts lintOptions) error {
	switch opts.format {
	case "text", "json", "github":
	default:
		return fmt.Errorf("unknown output format: %s", opts.format)
	}

	config, err := loadLintConfig(opts.dir, opts.configFile)
	if err != nil {
		return err
	}

	log := newOperatorLogger(opts.verbose)
	setup, err := newLintSetup(config, opts.verbose, opts.metricsOut != "")
	if err != nil {
		return err
	}

	lintOnce := func(ctx context.Context) error {
		return setup.lint(ctx, out, log, opts)
	}

	if !opts.watch {
		return lintOnce(ctx)
	}

	suffix := config.Parser.Suffix
	if suffix == "" {
		suffix = decl.DefaultStructureSuffix
	}
	watched := func(path string) bool {
		return isSourceFile(path) || strings.HasSuffix(path, suffix)
	}
	return watchAndLint(ctx, opts.dir, opts.debounce, log, watched, lintOnce)
}

func loadLintConfig(dir, configFile string) (*linter.Config, error) {
	var config *linter.Config
	var err error
	if configFile != "" {
		config, err = linter.LoadConfig(configFile)
	} else {
		config, err = linter.LoadConfigFromDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config, nil
}

// newOperatorLogger returns the logger for progress messages on stderr
func newOperatorLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func newParser(config *linter.Config) decl.Parser {
	if config.Parser.Type == linter.ParserCommand {
		return decl.NewCommandParser(config.Parser.Command)
	}
	return decl.NewStructureFileParser(config.Parser.Suffix)
}

// lintSetup holds everything that lives across the runs of one invocation
type lintSetup struct {
	config   *linter.Config
	engine   *linter.LintEngine
	registry *prometheus.Registry
}

func newLintSetup(config *linter.Config, verbose, withMetrics bool) (*lintSetup, error) {
	level := observability.ParseLogLevel(config.Logging.Level)
	if verbose {
		level = observability.DebugLevel
	}
	logger := observability.NewLogger(level, os.Stderr)
	parser := newParser(config)

	s := &lintSetup{config: config}
	engineOpts := []linter.EngineOption{linter.WithParser(parser), linter.WithLogger(logger)}
	if withMetrics {
		s.registry = prometheus.NewRegistry()
		engineOpts = append(engineOpts, linter.WithMetrics(observability.NewMetrics(s.registry)))
	}

	s.engine = linter.NewLintEngine(config, engineOpts...)
	if err := rules.RegisterDefaultRules(s.engine.Registry(), rules.Options{
		Config: config,
		Parser: parser,
		Logger: logger,
	}); err != nil {
		return nil, fmt.Errorf("failed to build rules: %w", err)
	}
	if err := s.engine.Registry().CheckNames(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

func (s *lintSetup) lint(ctx context.Context, out io.Writer, log *logrus.Logger, opts lintOptions) error {
	files, err := findSourceFiles(opts.dir, s.config.Excluded)
	if err != nil {
		return fmt.Errorf("failed to find source files: %w", err)
	}

	if len(files) == 0 {
		log.Infof("No %s files found in %s", sourceExt, opts.dir)
		return nil
	}

	log.WithField("files", len(files)).Debug("linting")

	run, err := s.engine.LintFiles(ctx, files)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"run":        run.ID,
		"violations": run.Summary.TotalViolations,
		"failed":     run.Summary.FailedFiles,
	}).Debug("lint finished")

	switch opts.format {
	case "json":
		err = lintOutputJSON(out, run)
	case "github":
		err = lintOutputGitHub(out, run)
	default:
		err = lintOutputText(out, run)
	}
	if err != nil {
		return err
	}

	if s.registry != nil {
		if err := observability.WriteTextfile(opts.metricsOut, s.registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return checkFailure(run.Summary, opts.failOnError, opts.failOnWarning)
}

func checkFailure(summary linter.Summary, failOnError, failOnWarning bool) error {
	if failOnError && summary.Errors > 0 {
		return fmt.Errorf("lint failed with %d errors", summary.Errors)
	}
	if failOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("lint failed with %d warnings", summary.Warnings)
	}
	return nil
}

// findSourceFiles returns the source files under dir, sorted, skipping hidden and vendor
// directories and the configured exclusions
func findSourceFiles(dir string, excluded []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if path != dir && (skipDir(info.Name()) || isExcluded(rel, excluded)) {
				return filepath.SkipDir
			}
			return nil
		}

		if isSourceFile(path) && !isExcluded(rel, excluded) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "vendor" || name == "third_party"
}

func isSourceFile(path string) bool {
	return filepath.Ext(path) == sourceExt
}

// isExcluded matches a slash-separated relative path against exclusions, each of which is
// a directory prefix or a filepath.Match pattern
func isExcluded(rel string, excluded []string) bool {
	for _, pattern := range excluded {
		pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
		if pattern == "" {
			continue
		}
		if rel == pattern || strings.HasPrefix(rel, pattern+"/") {
			return true
		}
		if ok, err := filepath.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func lintOutputText(out io.Writer, run *linter.Run) error {
	hasViolations := false

	for _, result := range run.Results {
		if len(result.Violations) == 0 {
			continue
		}

		hasViolations = true
		fmt.Fprintf(out, "\n%s:\n", result.FilePath)
		for _, v := range result.Violations {
			fmt.Fprintf(out, "  %s\n", v)
		}
	}

	if len(run.Failed) > 0 {
		fmt.Fprintf(out, "\nCould not parse:\n")
		for _, f := range run.Failed {
			fmt.Fprintf(out, "  %s: %s\n", f.Path, f.Error)
		}
	}

	summary := run.Summary
	fmt.Fprintf(out, "\n")
	fmt.Fprintf(out, "Summary:\n")
	fmt.Fprintf(out, "  Files:      %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "  Unparsed:   %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "  Violations: %d\n", summary.TotalViolations)
	fmt.Fprintf(out, "  Errors:     %d\n", summary.Errors)
	fmt.Fprintf(out, "  Warnings:   %d\n", summary.Warnings)
	fmt.Fprintf(out, "  Infos:      %d\n", summary.Infos)

	if !hasViolations {
		fmt.Fprintln(out, "\n✓ All files passed linting")
	}
	return nil
}

func lintOutputJSON(out io.Writer, run *linter.Run) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}

func lintOutputGitHub(out io.Writer, run *linter.Run) error {
	// GitHub Actions annotation format
	// ::error file={name},line={line},col={col}::{message}
	for _, result := range run.Results {
		for _, v := range result.Violations {
			level := "error"
			if v.Severity == linter.SeverityWarning {
				level = "warning"
			} else if v.Severity == linter.SeverityInfo {
				level = "notice"
			}

			position := "file=" + result.FilePath
			if v.Location.HasLine() {
				position += fmt.Sprintf(",line=%d,col=%d", v.Location.Line, v.Location.Character)
			}
			fmt.Fprintf(out, "::%s %s::[%s] %s\n", level, position, v.Rule, v.Reason)
		}
	}

	for _, f := range run.Failed {
		fmt.Fprintf(out, "::error file=%s::%s\n", f.Path, f.Error)
	}
	return nil
}
