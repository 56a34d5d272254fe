// Package pipeline runs the quality checks over the files of a commit, one
// stage after another, and stops at the first stage that fails.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cqt/internal/checks"
	"cqt/internal/discovery"
	"cqt/internal/domain"
	"cqt/internal/execution"
	"cqt/internal/logger"
	"cqt/internal/ui"
)

const (
	composerManifest = "composer.json"
	composerLock     = "composer.lock"
)

// Policy tunes how failures inside a stage are handled
type Policy struct {
	// FailFast stops a per-file stage at the first failing file.
	// By default every file is checked so the whole report is printed at once.
	FailFast bool
	// AllSuites keeps running test suites after one has failed
	AllSuites bool
	// Skip holds stage names to leave out of this run
	Skip map[string]bool
	// Suites restricts the test stage to the named suites
	Suites []string
}

// ProgressFunc creates a progress reporter for a stage over count files
type ProgressFunc func(count int, label string) execution.Progress

// Pipeline sequences the check stages of one run
type Pipeline struct {
	files    discovery.Source
	checks   *checks.Set
	executor execution.Executor
	printer  *ui.Printer
	policy   Policy
	progress ProgressFunc

	failures []domain.Failure
}

// New creates a Pipeline over files. The file list is read once per run.
func New(files discovery.Source, set *checks.Set, executor execution.Executor, printer *ui.Printer, policy Policy) *Pipeline {
	return &Pipeline{
		files:    files,
		checks:   set,
		executor: executor,
		printer:  printer,
		policy:   policy,
	}
}

// SetProgress sets the progress reporter factory for per-file stages
func (p *Pipeline) SetProgress(fn ProgressFunc) {
	p.progress = fn
}

// Failures returns the failed checks of the last run
func (p *Pipeline) Failures() []domain.Failure {
	return p.failures
}

// Run executes every stage in order. It returns a *StageError naming the
// first failing category, or the error of a tool that could not be launched.
func (p *Pipeline) Run(ctx context.Context) error {
	start := time.Now()
	p.failures = nil

	p.printer.Step("Fetching files")
	files := p.files.All(ctx)
	logger.Debug(ctx, "gathered files", slog.Int("count", len(files)))

	p.printer.Step("Check composer")
	p.checkComposer(files)

	for _, stage := range fileStages(p.checks) {
		if p.policy.Skip[stage.name] {
			p.printer.Comment("Skipping %s", stage.label)
			continue
		}
		p.printer.Step(stage.title)
		if err := p.runFileStage(ctx, stage, files); err != nil {
			return err
		}
	}

	if p.policy.Skip[StageTests] {
		p.printer.Comment("Skipping unit tests")
	} else {
		p.printer.Step("Running unit tests")
		if err := p.runTests(ctx); err != nil {
			return err
		}
	}

	logger.Debug(ctx, "pipeline passed", slog.Duration("duration", time.Since(start)))
	p.printer.Success("Good job dude!")
	return nil
}

// RunTests executes only the test stage
func (p *Pipeline) RunTests(ctx context.Context) error {
	p.failures = nil
	p.printer.Step("Running unit tests")
	return p.runTests(ctx)
}

// Fix runs the style fixer in write mode over the staged source files
func (p *Pipeline) Fix(ctx context.Context) error {
	p.failures = nil
	fixer := p.checks.CSFixer
	targets := fixer.Files(p.files.All(ctx))
	if len(targets) == 0 {
		p.printer.Comment("No staged source files to fix")
		return nil
	}
	if err := fixer.Preflight(); err != nil {
		return err
	}

	p.printer.Step("Fixing code style")
	results, _, err := p.batch(len(targets), "PHP-CS-Fixer").Execute(ctx, targets, fixer.FixCommand)
	if err != nil {
		return err
	}
	var failed []string
	for _, result := range results {
		if result.Success {
			p.printer.Info("%s", result.Path)
			continue
		}
		failed = append(failed, result.Path)
		p.record(StageStyle, result.Path, result)
	}
	if len(failed) > 0 {
		return &StageError{Stage: StageStyle, Category: "files the fixer could not process", Failed: failed, Total: len(targets)}
	}
	p.printer.Success("Fixed %d file(s), review and stage the changes", len(targets))
	return nil
}

// checkComposer warns when the manifest is committed without its lock file
func (p *Pipeline) checkComposer(files []string) {
	var manifest, lock bool
	for _, file := range files {
		switch file {
		case composerManifest:
			manifest = true
		case composerLock:
			lock = true
		}
	}
	if manifest && !lock {
		p.printer.Warning("composer.lock must be committed if composer.json is modified!")
	}
}

func (p *Pipeline) batch(count int, label string) *execution.Batch {
	batch := execution.NewBatch(p.executor)
	if p.progress != nil {
		batch.SetProgress(p.progress(count, label))
	}
	return batch
}

func (p *Pipeline) runFileStage(ctx context.Context, stage fileStage, files []string) error {
	targets := stage.check.Files(files)
	if len(targets) == 0 {
		logger.Debug(ctx, "no files for stage", slog.String("stage", stage.name))
		return nil
	}
	if err := stage.check.Preflight(); err != nil {
		return err
	}

	results, duration, err := p.batch(len(targets), stage.label).
		ExecuteWithOptions(ctx, targets, stage.check.Command, p.policy.FailFast)
	if err != nil {
		return err
	}

	var failed []string
	for _, result := range results {
		if result.Success {
			continue
		}
		failed = append(failed, result.Path)
		p.printer.Failure(result.Path, result.Output())
		p.record(stage.name, result.Path, result)
	}

	logger.Debug(ctx, "stage finished",
		slog.String("stage", stage.name),
		slog.Int("files", len(results)),
		slog.Int("failed", len(failed)),
		slog.Duration("duration", duration))

	if len(failed) > 0 {
		return &StageError{Stage: stage.name, Category: categories[stage.name], Failed: failed, Total: len(targets)}
	}
	return nil
}

func (p *Pipeline) runTests(ctx context.Context) error {
	tests := p.checks.Tests
	suites, err := tests.Select(p.policy.Suites...)
	if err != nil {
		return err
	}
	if len(suites) == 0 {
		p.printer.Comment("There is no tests configuration suites")
		return nil
	}
	if err := tests.Preflight(suites); err != nil {
		return err
	}

	var failed []string
	for _, suite := range suites {
		cmd, err := tests.Command(suite, p.printer.Writer())
		if err != nil {
			return err
		}
		result, err := p.executor.Run(ctx, cmd)
		if err != nil {
			return err
		}
		logger.Debug(ctx, "suite finished",
			slog.String("suite", suite.Name),
			slog.Bool("success", result.Success),
			slog.Duration("duration", result.Duration))
		if result.Success {
			continue
		}

		failed = append(failed, suite.Name)
		p.record(StageTests, suite.Name, result)
		// Output was already streamed, only a timeout needs reporting
		var exitErr interface{ ExitCode() int }
		if result.Err != nil && !errors.As(result.Err, &exitErr) {
			p.printer.Failure(suite.Name, result.Err.Error())
		}
		if !p.policy.AllSuites {
			break
		}
	}

	if len(failed) > 0 {
		return &StageError{Stage: StageTests, Category: categories[StageTests], Failed: failed, Total: len(suites)}
	}
	return nil
}

func (p *Pipeline) record(stage, target string, result domain.CheckResult) {
	p.failures = append(p.failures, domain.Failure{Stage: stage, Target: target, Result: result})
}
