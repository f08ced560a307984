package linter

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/platinummonkey/declint/pkg/decl"
	"github.com/platinummonkey/declint/pkg/observability"
	"github.com/platinummonkey/declint/pkg/protocols"
	"golang.org/x/sync/errgroup"
)

// ErrNoParser is returned by LintFiles when the engine has no parser
var ErrNoParser = errors.New("lint engine has no parser")

var errEmptyParse = errors.New("parser returned no file")

// LintEngine orchestrates the linting process
type LintEngine struct {
	config   *Config
	registry *RuleRegistry
	parser   decl.Parser
	logger   *observability.Logger
	metrics  *observability.Metrics
}

// EngineOption configures a LintEngine
type EngineOption func(*LintEngine)

// WithParser sets the parser LintFiles uses to read files
func WithParser(p decl.Parser) EngineOption {
	return func(e *LintEngine) { e.parser = p }
}

// WithLogger sets the engine logger
func WithLogger(l *observability.Logger) EngineOption {
	return func(e *LintEngine) { e.logger = l }
}

// WithMetrics records run metrics on m
func WithMetrics(m *observability.Metrics) EngineOption {
	return func(e *LintEngine) { e.metrics = m }
}

// NewLintEngine creates a new lint engine
func NewLintEngine(config *Config, opts ...EngineOption) *LintEngine {
	if config == nil {
		config = DefaultConfig()
	}

	e := &LintEngine{
		config:   config,
		registry: NewRuleRegistry(),
		logger:   observability.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's rule registry
func (e *LintEngine) Registry() *RuleRegistry {
	return e.registry
}

// Config returns the engine configuration
func (e *LintEngine) Config() *Config {
	return e.config
}

// Lint runs all enabled rules against one file with a fresh protocol lookup session
func (e *LintEngine) Lint(ctx context.Context, file *decl.File) LintResult {
	return e.lint(ctx, file, protocols.NewSession(e.config.MemoSize, e.metrics))
}

func (e *LintEngine) lint(ctx context.Context, file *decl.File, session *protocols.Session) LintResult {
	if file == nil {
		return LintResult{Violations: make([]Violation, 0)}
	}

	result := LintResult{
		FilePath:   file.Path,
		Violations: make([]Violation, 0),
	}

	lintCtx := &LintContext{
		Context:   observability.WithLogger(ctx, e.logger),
		FilePath:  file.Path,
		Config:    e.config,
		Logger:    e.logger.WithField("file", file.Path),
		Protocols: session,
	}

	// Rules run in name order so output is reproducible
	for _, rule := range e.registry.GetEnabledRules(e.config) {
		result.Violations = append(result.Violations, e.runRule(rule, file, lintCtx)...)
	}

	e.metrics.RecordFile("ok")
	return result
}

func (e *LintEngine) runRule(rule Rule, file *decl.File, ctx *LintContext) (violations []Violation) {
	defer observability.RecoverPanic(ctx.Logger, "rule "+rule.Name())

	start := time.Now()
	violations = rule.Check(file, ctx)

	if e.metrics != nil {
		bySeverity := make(map[string]int)
		for _, v := range violations {
			bySeverity[string(v.Severity)]++
		}
		e.metrics.RecordRule(rule.Name(), time.Since(start), bySeverity)
	}
	return violations
}

// FileError records a file that could not be parsed
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Run is the outcome of linting a set of files
type Run struct {
	ID        string       `json:"id"`
	StartedAt time.Time    `json:"started_at"`
	Results   []LintResult `json:"results"`
	Failed    []FileError  `json:"failed,omitempty"`
	Summary   Summary      `json:"summary"`
}

// LintFiles parses and lints files in parallel, sharing one protocol lookup session. Files
// that fail to parse are listed in Run.Failed and contribute no violations. Results are
// ordered by path.
func (e *LintEngine) LintFiles(ctx context.Context, paths []string) (*Run, error) {
	if e.parser == nil {
		return nil, ErrNoParser
	}

	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	session := protocols.NewSession(e.config.MemoSize, e.metrics)

	workers := e.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	results := make([]*LintResult, len(sorted))
	var mu sync.Mutex

	for i, path := range sorted {
		i, path := i, path
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			file, err := e.parser.Parse(egCtx, path)
			if err == nil && file == nil {
				err = errEmptyParse
			}
			if err != nil {
				if ctxErr := egCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				e.logger.WithField("file", path).WithError(err).Warn("file could not be parsed")
				e.metrics.RecordFile("failed")

				mu.Lock()
				run.Failed = append(run.Failed, FileError{Path: path, Error: err.Error()})
				mu.Unlock()
				return nil
			}

			result := e.lint(egCtx, file, session)
			results[i] = &result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r != nil {
			run.Results = append(run.Results, *r)
		}
	}
	sort.Slice(run.Failed, func(i, j int) bool { return run.Failed[i].Path < run.Failed[j].Path })

	run.Summary = e.GenerateSummary(run.Results)
	run.Summary.FailedFiles = len(run.Failed)
	return run, nil
}

// GenerateSummary creates a summary of lint results
func (e *LintEngine) GenerateSummary(results []LintResult) Summary {
	summary := Summary{
		TotalFiles: len(results),
	}

	for _, result := range results {
		summary.TotalViolations += len(result.Violations)
		for _, v := range result.Violations {
			switch v.Severity {
			case SeverityError:
				summary.Errors++
			case SeverityWarning:
				summary.Warnings++
			case SeverityInfo:
				summary.Infos++
			}
		}
	}

	return summary
}
